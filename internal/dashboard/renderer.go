package dashboard

// ChartSpec describes one chart to draw.
type ChartSpec struct {
	Title  string
	Labels []string
	Points []*float64
}

// Chart is a live chart instance. Close releases whatever the surface
// allocated for it; a closed chart is never reused.
type Chart interface {
	Close()
}

// Surface is the drawing backend the presenter renders onto. The terminal
// renderer in cmd/hivewatch-dashboard implements it; tests use a fake.
type Surface interface {
	// NewChart draws a chart and returns a handle for later teardown.
	NewChart(spec ChartSpec) Chart
	// ShowPlaceholder replaces the chart area with a message.
	ShowPlaceholder(msg string)
}
