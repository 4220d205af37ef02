package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for budgets that only warn.
	SevWarning Severity = iota + 1
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label returns the lower-case form used in JSON and SARIF output.
func (s Severity) Label() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity converts "warning"/"error" (any case) to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning", "WARNING", "Warning":
		return SevWarning, nil
	case "error", "ERROR", "Error":
		return SevError, nil
	default:
		return 0, fmt.Errorf("invalid severity: %q (expected: warning|error)", s)
	}
}
