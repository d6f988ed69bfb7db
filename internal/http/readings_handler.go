package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"hivewatch/internal/domain"
	"hivewatch/internal/service"

	"go.uber.org/zap"
)

const maxIngestBody = 1 << 20

// ReadingsHandler serves the dashboard API: device ingestion, the latest
// reading, filtered history, the store extent, and the active thresholds.
type ReadingsHandler struct {
	readings *service.ReadingsService
	history  *service.HistoryService
	status   *service.StatusService
	logger   *zap.Logger
}

func NewReadingsHandler(
	readings *service.ReadingsService,
	history *service.HistoryService,
	status *service.StatusService,
	logger *zap.Logger,
) *ReadingsHandler {
	return &ReadingsHandler{
		readings: readings,
		history:  history,
		status:   status,
		logger:   logger,
	}
}

type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PostData ingests one device payload.
func (h *ReadingsHandler) PostData(w http.ResponseWriter, req *http.Request) {
	var payload service.ReadingPayload
	if err := readBodyJSON(req, maxIngestBody, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, statusBody{Status: "error", Message: "malformed JSON body"})
		return
	}

	rd, err := h.readings.Ingest(req.Context(), payload)
	if errors.Is(err, service.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, statusBody{Status: "error", Message: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("ingestion failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, statusBody{Status: "error", Message: "failed to store reading"})
		return
	}

	h.logger.Debug("reading ingested",
		zap.Int64("id", rd.ID),
		zap.Float64("weight", rd.Weight),
		zap.Float64("temperature", rd.Temperature),
	)
	writeJSON(w, http.StatusOK, statusBody{Status: "success"})
}

// GetLatest returns the most recent reading as a flat object, or {} when the
// store is empty. A store failure also yields {} so the dashboard shows its
// "no data" status instead of breaking.
func (h *ReadingsHandler) GetLatest(w http.ResponseWriter, req *http.Request) {
	rd, err := h.readings.Latest(req.Context())
	if err != nil {
		h.logger.Error("latest reading lookup failed", zap.Error(err))
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	if rd == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

// GetHistory returns readings matching the requested filter, ascending,
// capped at 500 rows. Without any filter parameters the server substitutes
// the default window. A partial filter is accepted leniently on the time
// side only: omitted times widen to 00:00:00-23:59:59, while an omitted
// date is a 400 (a date-less filter would be an unbounded scan). A store
// failure yields [] so the chart layer stays renderable; only a bad filter
// is an HTTP error.
func (h *ReadingsHandler) GetHistory(w http.ResponseWriter, req *http.Request) {
	rows, err := h.queryHistory(req)
	if errors.Is(err, service.ErrInvalidQuery) {
		writeJSON(w, http.StatusBadRequest, statusBody{Status: "error", Message: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusOK, []domain.Reading{})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ExportHistory streams the filtered history as an Excel workbook.
func (h *ReadingsHandler) ExportHistory(w http.ResponseWriter, req *http.Request) {
	rows, err := h.queryHistory(req)
	if errors.Is(err, service.ErrInvalidQuery) {
		writeJSON(w, http.StatusBadRequest, statusBody{Status: "error", Message: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, statusBody{Status: "error", Message: "history export failed"})
		return
	}

	data, err := GenerateHistoryExport(rows)
	if err != nil {
		h.logger.Error("history export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, statusBody{Status: "error", Message: "history export failed"})
		return
	}

	filename := fmt.Sprintf("hive-history-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *ReadingsHandler) queryHistory(req *http.Request) ([]domain.Reading, error) {
	params := req.URL.Query()
	q := domain.HistoryQuery{
		StartDate: params.Get("startDate"),
		EndDate:   params.Get("endDate"),
		StartTime: params.Get("startTime"),
		EndTime:   params.Get("endTime"),
	}

	if q.Empty() {
		q = h.history.DefaultWindow(req.Context(), time.Now())
	} else {
		// Missing times widen to the whole day; missing dates are rejected
		// by Query so a partial filter never becomes an unbounded scan.
		if q.StartTime == "" {
			q.StartTime = "00:00:00"
		}
		if q.EndTime == "" {
			q.EndTime = "23:59:59"
		}
	}
	return h.history.Query(req.Context(), q)
}

// GetDataLimits returns the store's min/max timestamps (nulls when empty) for
// the filter form's date bounds.
func (h *ReadingsHandler) GetDataLimits(w http.ResponseWriter, req *http.Request) {
	ext, err := h.history.Extent(req.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, domain.Extent{})
		return
	}
	writeJSON(w, http.StatusOK, ext)
}

// GetThresholds returns the effective ThresholdSet as a flat name→value map.
func (h *ReadingsHandler) GetThresholds(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, h.status.Thresholds().Map())
}

func (h *ReadingsHandler) Health(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, statusBody{Status: "ok"})
}
