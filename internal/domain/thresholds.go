package domain

// ThresholdSet holds the named bounds the status evaluator classifies a
// reading against. Critical bounds trip danger, warn bounds trip warning.
// The low-humidity pair is optional: zero disables those checks.
// Read-only from the evaluator's perspective; overrides come from the
// threshold_overrides table via ApplyOverrides.
type ThresholdSet struct {
	// Weight below this is treated as a scale fault, warning only.
	WeightLowMin float64

	// Brood-nest temperature bounds.
	TempLowCritical  float64
	TempLowWarn      float64
	TempHighWarn     float64
	TempHighCritical float64

	HumHighWarn     float64
	HumHighCritical float64
	HumLowWarn      float64
	HumLowCritical  float64

	AudioWarn     int
	AudioCritical int
}

// DefaultThresholds returns the process-wide defaults, tuned for the current
// apiary deployment.
func DefaultThresholds() ThresholdSet {
	return ThresholdSet{
		WeightLowMin:     15000,
		TempLowCritical:  30,
		TempLowWarn:      33,
		TempHighWarn:     36,
		TempHighCritical: 38,
		HumHighWarn:      75,
		HumHighCritical:  85,
		HumLowWarn:       0,
		HumLowCritical:   0,
		AudioWarn:        2000,
		AudioCritical:    3000,
	}
}

// Map returns the flat name→value form served by GET /thresholds. The names
// double as override keys in the threshold_overrides table.
func (t ThresholdSet) Map() map[string]float64 {
	return map[string]float64{
		"weight_low_min":     t.WeightLowMin,
		"temp_low_critical":  t.TempLowCritical,
		"temp_low_warn":      t.TempLowWarn,
		"temp_high_warn":     t.TempHighWarn,
		"temp_high_critical": t.TempHighCritical,
		"hum_high_warn":      t.HumHighWarn,
		"hum_high_critical":  t.HumHighCritical,
		"hum_low_warn":       t.HumLowWarn,
		"hum_low_critical":   t.HumLowCritical,
		"audio_warn":         float64(t.AudioWarn),
		"audio_critical":     float64(t.AudioCritical),
	}
}

// ApplyOverrides merges persisted overrides onto the set. Unknown names are
// ignored so stale rows cannot poison the defaults.
func (t ThresholdSet) ApplyOverrides(overrides map[string]float64) ThresholdSet {
	for name, v := range overrides {
		switch name {
		case "weight_low_min":
			t.WeightLowMin = v
		case "temp_low_critical":
			t.TempLowCritical = v
		case "temp_low_warn":
			t.TempLowWarn = v
		case "temp_high_warn":
			t.TempHighWarn = v
		case "temp_high_critical":
			t.TempHighCritical = v
		case "hum_high_warn":
			t.HumHighWarn = v
		case "hum_high_critical":
			t.HumHighCritical = v
		case "hum_low_warn":
			t.HumLowWarn = v
		case "hum_low_critical":
			t.HumLowCritical = v
		case "audio_warn":
			t.AudioWarn = int(v)
		case "audio_critical":
			t.AudioCritical = int(v)
		}
	}
	return t
}
