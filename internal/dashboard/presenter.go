package dashboard

import (
	"go.uber.org/zap"

	"hivewatch/internal/domain"
)

// PlaceholderNoData is shown when the cached history window has no rows.
const PlaceholderNoData = "No historical data available in the selected range."

// Presenter owns the history cache and the charts drawn from it. The cache
// is replaced wholesale on every fetch, so a re-render of the same view is
// deterministic: same cache, same charts. Switching views never refetches.
type Presenter struct {
	surface Surface
	logger  *zap.Logger

	history []Series // indexed like MetricViews, nil until first SetHistory
	hasData bool
	charts  []Chart
}

func NewPresenter(surface Surface, logger *zap.Logger) *Presenter {
	return &Presenter{
		surface: surface,
		logger:  logger,
	}
}

// SetHistory replaces the cached window with the given readings. An empty
// slice is a valid window and clears the charts down to the placeholder.
func (p *Presenter) SetHistory(readings []domain.Reading) {
	p.history = make([]Series, len(MetricViews))
	for i, view := range MetricViews {
		p.history[i] = PrepareSeries(readings, view)
	}
	p.hasData = len(readings) > 0
}

// Clear drops the cached window entirely, as after a failed fetch.
func (p *Presenter) Clear() {
	p.history = nil
	p.hasData = false
}

// Render tears down every live chart and redraws the requested view from
// the cache. Teardown always runs first so a failed draw never leaves a
// stale chart from the previous view on screen.
func (p *Presenter) Render(view View) {
	p.teardown()

	if !p.hasData {
		p.surface.ShowPlaceholder(PlaceholderNoData)
		return
	}

	if view == ViewOverview {
		for i, mv := range MetricViews {
			p.draw(mv, p.history[i])
		}
		return
	}
	for i, mv := range MetricViews {
		if mv == view {
			p.draw(mv, p.history[i])
			return
		}
	}
	p.logger.Warn("render skipped for unknown view", zap.String("view", string(view)))
	p.surface.ShowPlaceholder(PlaceholderNoData)
}

// ChartCount reports how many charts are currently live.
func (p *Presenter) ChartCount() int {
	return len(p.charts)
}

func (p *Presenter) draw(view View, s Series) {
	chart := p.surface.NewChart(ChartSpec{
		Title:  view.Title(),
		Labels: s.Labels,
		Points: s.Points,
	})
	if chart != nil {
		p.charts = append(p.charts, chart)
	}
}

func (p *Presenter) teardown() {
	for _, c := range p.charts {
		c.Close()
	}
	p.charts = nil
}
