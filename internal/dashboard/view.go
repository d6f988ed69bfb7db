package dashboard

import "fmt"

// View selects which charts the presenter draws.
type View string

const (
	ViewOverview    View = "overview"
	ViewWeight      View = "weight"
	ViewTemperature View = "temperature"
	ViewHumidity    View = "humidity"
	ViewAudio       View = "audio"
)

// MetricViews lists the single-metric views in overview drawing order.
var MetricViews = []View{ViewWeight, ViewTemperature, ViewHumidity, ViewAudio}

// ParseView validates a view name from config or user input.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewOverview, ViewWeight, ViewTemperature, ViewHumidity, ViewAudio:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Title returns the chart heading for a metric view.
func (v View) Title() string {
	switch v {
	case ViewWeight:
		return "Weight (g)"
	case ViewTemperature:
		return "Temperature (°C)"
	case ViewHumidity:
		return "Humidity (%)"
	case ViewAudio:
		return "Audio level"
	case ViewOverview:
		return "Hive overview"
	}
	return string(v)
}
