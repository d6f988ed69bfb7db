package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hivewatch/internal/domain"
)

// Client talks to the hivewatch HTTP API.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// Latest fetches the most recent reading, or nil when the server reports an
// empty store. The server encodes "no data" as {}, which an ID of zero alone
// cannot distinguish from a real reading, so the body is inspected first.
func (c *Client) Latest() (*domain.Reading, error) {
	resp, err := c.httpClient.R().Get("/latest")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest reading: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("latest reading request failed: %s", resp.Status())
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &probe); err != nil {
		return nil, fmt.Errorf("failed to decode latest reading: %w", err)
	}
	if len(probe) == 0 {
		return nil, nil
	}

	var rd domain.Reading
	if err := json.Unmarshal(resp.Body(), &rd); err != nil {
		return nil, fmt.Errorf("failed to decode latest reading: %w", err)
	}
	return &rd, nil
}

// History fetches the readings for the given window. An incomplete query
// sends no parameters, letting the server derive its default window.
func (c *Client) History(q domain.HistoryQuery) ([]domain.Reading, error) {
	req := c.httpClient.R()
	if q.Complete() {
		req.SetQueryParams(map[string]string{
			"startDate": q.StartDate,
			"endDate":   q.EndDate,
			"startTime": q.StartTime,
			"endTime":   q.EndTime,
		})
	}

	var rows []domain.Reading
	resp, err := req.SetResult(&rows).Get("/history")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("history request failed: %s", resp.Status())
	}
	return rows, nil
}

// DataLimits fetches the store extent for bounding the filter window.
func (c *Client) DataLimits() (domain.Extent, error) {
	var ext domain.Extent
	resp, err := c.httpClient.R().SetResult(&ext).Get("/data-limits")
	if err != nil {
		return domain.Extent{}, fmt.Errorf("failed to fetch data limits: %w", err)
	}
	if resp.IsError() {
		return domain.Extent{}, fmt.Errorf("data limits request failed: %s", resp.Status())
	}
	return ext, nil
}

// Thresholds fetches the server's effective threshold map.
func (c *Client) Thresholds() (map[string]float64, error) {
	var m map[string]float64
	resp, err := c.httpClient.R().SetResult(&m).Get("/thresholds")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thresholds: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("thresholds request failed: %s", resp.Status())
	}
	return m, nil
}
