package dashboard

import "hivewatch/internal/domain"

// LabelLayout is the x-axis timestamp format, day/month plus wall time.
const LabelLayout = "02/01 15:04"

// Series is one chart-ready metric: labels and points share an index, and a
// nil point marks a sample where the sensor reported no value. Keeping the
// nil in place preserves label alignment instead of collapsing the gap.
type Series struct {
	Labels []string
	Points []*float64
}

// PrepareSeries projects readings onto one metric in store order.
func PrepareSeries(readings []domain.Reading, view View) Series {
	s := Series{
		Labels: make([]string, 0, len(readings)),
		Points: make([]*float64, 0, len(readings)),
	}
	for i := range readings {
		rd := &readings[i]
		s.Labels = append(s.Labels, rd.Timestamp.Format(LabelLayout))
		s.Points = append(s.Points, metricValue(rd, view))
	}
	return s
}

func metricValue(rd *domain.Reading, view View) *float64 {
	switch view {
	case ViewWeight:
		v := rd.Weight
		return &v
	case ViewTemperature:
		v := rd.Temperature
		return &v
	case ViewHumidity:
		return rd.Humidity
	case ViewAudio:
		if rd.Audio == nil {
			return nil
		}
		v := float64(*rd.Audio)
		return &v
	}
	return nil
}
