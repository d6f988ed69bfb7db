package domain

import "time"

// Reading is one timestamped sensor sample reported by the hive node.
// Weight is in grams, temperature in °C, humidity in percent, audio in raw
// sensor units (0-4095 on the current hardware). Humidity and audio may be
// absent on a sample; weight and temperature never are once a reading has
// passed the ingestion boundary. Readings are immutable once persisted.
type Reading struct {
	ID          int64     `json:"id,omitempty"`
	Weight      float64   `json:"weight"`
	Temperature float64   `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Audio       *int      `json:"audio"`
	Timestamp   time.Time `json:"timestamp"`
}

// Extent is the store's overall min/max timestamp aggregate. Both fields are
// nil when the store holds no readings.
type Extent struct {
	Min *time.Time `json:"min_date"`
	Max *time.Time `json:"max_date"`
}
