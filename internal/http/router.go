package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party router
// dependency needed for this surface).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterReadingRoutes wires the dashboard API surface.
func (r *Router) RegisterReadingRoutes(h *ReadingsHandler) {
	r.Handle("/data", methodOnly(http.MethodPost, h.PostData))
	r.Handle("/latest", methodOnly(http.MethodGet, h.GetLatest))
	r.Handle("/history", methodOnly(http.MethodGet, h.GetHistory))
	r.Handle("/history/export", methodOnly(http.MethodGet, h.ExportHistory))
	r.Handle("/data-limits", methodOnly(http.MethodGet, h.GetDataLimits))
	r.Handle("/thresholds", methodOnly(http.MethodGet, h.GetThresholds))
	r.Handle("/health", methodOnly(http.MethodGet, h.Health))
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
