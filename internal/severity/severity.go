// Package severity provides severity level constants for issues reported
// during code generation, source parsing, and merging.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates an invalid input combination that prevents
	// the requested operation from producing output.
	SeverityError Severity = iota

	// SeverityWarning indicates lossy generation choices or recommendations
	// that do not prevent processing but should be reviewed.
	SeverityWarning

	// SeverityInfo indicates informational messages about generation choices.
	SeverityInfo

	// SeverityCritical indicates features that cannot be generated at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
