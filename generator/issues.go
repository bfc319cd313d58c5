package generator

import (
	"fmt"

	"github.com/restitch/restitch/internal/severity"
)

// Severity indicates the severity level of a generation issue.
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices.
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates features that may not generate perfectly.
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates validation errors.
	SeverityError = severity.SeverityError
	// SeverityCritical indicates features that cannot be generated.
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation.
type GenerateIssue struct {
	// Path locates the problem in the source model (e.g. "components.schemas.Pet").
	Path string
	// Message is a human-readable description of the issue.
	Message string
	// Severity indicates the severity level of the issue.
	Severity Severity
}

// String returns a formatted representation of the issue.
func (i GenerateIssue) String() string {
	var symbol string
	switch i.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}
	if i.Path == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
}
