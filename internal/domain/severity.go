package domain

// Severity classifies the hive status. Values are ordered: ok < warning < danger.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "ok"
	}
}

// Escalate returns the higher of the two severities. Within one evaluation a
// severity only ever moves up, never back down.
func (s Severity) Escalate(to Severity) Severity {
	if to > s {
		return to
	}
	return s
}
