// Package evaluator derives the hive's alert state from its latest reading.
// Evaluation is pure: no I/O, fully deterministic given the inputs and the
// threshold set, recomputed from scratch on every polling cycle.
package evaluator

import (
	"fmt"

	"hivewatch/internal/domain"
)

// Alert is one triggered check: its own severity plus a display message
// carrying the offending value.
type Alert struct {
	Severity domain.Severity `json:"severity"`
	Message  string          `json:"message"`
}

// AlertState is the derived, ephemeral dashboard status. It has no identity
// beyond the current evaluation and is superseded entirely by the next one.
type AlertState struct {
	Severity domain.Severity `json:"severity"`
	Alerts   []Alert         `json:"alerts"`
	Summary  string          `json:"summary"`
}

// Evaluate maps the latest reading (possibly absent) and an optional transport
// error to an AlertState. A transport error or an absent reading short-circuits
// to danger with a single connectivity alert; no threshold check runs without
// a reading. Otherwise the checks run in a fixed order (temperature, humidity,
// audio, weight) so alert rows are stable on screen and in assertions, and the
// overall severity only ever escalates across checks.
func Evaluate(r *domain.Reading, transportErr error, t domain.ThresholdSet) AlertState {
	if transportErr != nil || r == nil {
		msg := "No recent readings: the hive node appears inactive."
		if transportErr != nil {
			msg = "Connection error: could not reach the hive monitor."
		}
		return AlertState{
			Severity: domain.SeverityDanger,
			Alerts:   []Alert{{Severity: domain.SeverityDanger, Message: msg}},
			Summary:  "ERROR: no data available from the hive.",
		}
	}

	st := AlertState{Severity: domain.SeverityOK}
	add := func(sev domain.Severity, msg string) {
		st.Alerts = append(st.Alerts, Alert{Severity: sev, Message: msg})
		st.Severity = st.Severity.Escalate(sev)
	}

	switch {
	case r.Temperature > t.TempHighCritical || r.Temperature < t.TempLowCritical:
		add(domain.SeverityDanger,
			fmt.Sprintf("Critical temperature: %.1f °C. Needs urgent attention.", r.Temperature))
	case r.Temperature > t.TempHighWarn || r.Temperature < t.TempLowWarn:
		add(domain.SeverityWarning,
			fmt.Sprintf("Temperature out of the optimal range: %.1f °C. Check ventilation or insulation.", r.Temperature))
	}

	if r.Humidity != nil {
		h := *r.Humidity
		switch {
		case h > t.HumHighCritical:
			add(domain.SeverityDanger,
				fmt.Sprintf("Critical humidity: %.0f%%. Risk of fungal disease.", h))
		case h > t.HumHighWarn:
			add(domain.SeverityWarning,
				fmt.Sprintf("High humidity: %.0f%%. Improve ventilation.", h))
		case t.HumLowCritical > 0 && h < t.HumLowCritical:
			add(domain.SeverityDanger,
				fmt.Sprintf("Critical low humidity: %.0f%%.", h))
		case t.HumLowWarn > 0 && h < t.HumLowWarn:
			add(domain.SeverityWarning,
				fmt.Sprintf("Low humidity: %.0f%%.", h))
		}
	}

	if r.Audio != nil {
		a := *r.Audio
		switch {
		case a > t.AudioCritical:
			add(domain.SeverityDanger,
				fmt.Sprintf("Extreme noise level %d. Possible swarming or predator attack.", a))
		case a > t.AudioWarn:
			add(domain.SeverityWarning,
				fmt.Sprintf("High noise level %d. Unusual colony activity.", a))
		}
	}

	// A weight this low means the scale is faulty or the hive was opened;
	// warning regardless of magnitude, it is not a colony-health signal.
	if r.Weight < t.WeightLowMin {
		add(domain.SeverityWarning,
			fmt.Sprintf("Low weight (%.2f g). Check the scale and the colony.", r.Weight))
	}

	st.Summary = summarize(st)
	return st
}

// summarize derives the headline from the final severity and the alert count,
// never from the most recent check's message alone.
func summarize(st AlertState) string {
	switch st.Severity {
	case domain.SeverityDanger:
		return fmt.Sprintf("CRITICAL: %d problem(s) need attention.", len(st.Alerts))
	case domain.SeverityWarning:
		return fmt.Sprintf("WARNING: %d parameter(s) outside the optimal range.", len(st.Alerts))
	default:
		return "Hive OK: all parameters within the optimal range."
	}
}
