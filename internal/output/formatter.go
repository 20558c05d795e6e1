package output

import (
	"io"
	"os"
	"strings"
)

// Formatter renders a plan report
type Formatter interface {
	Format(report *PlanReport, w io.Writer) error
}

// VerbosityLevel determines output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // one-line summary
	VerbosityStandard                       // summary + per-day table
	VerbosityJSON                           // machine-readable
)

// ParseVerbosity maps a --format flag value to a level
func ParseVerbosity(s string) (VerbosityLevel, bool) {
	switch strings.ToLower(s) {
	case "quiet", "q":
		return VerbosityQuiet, true
	case "table", "standard", "":
		return VerbosityStandard, true
	case "json":
		return VerbosityJSON, true
	}
	return VerbosityStandard, false
}

// NewFormatter creates the formatter for level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// GetDefaultVerbosity returns appropriate default based on environment
func GetDefaultVerbosity() VerbosityLevel {
	if os.Getenv("GITART_OUTPUT") == "json" {
		return VerbosityJSON
	}
	if os.Getenv("CI") == "true" {
		return VerbosityQuiet
	}
	return VerbosityStandard
}
