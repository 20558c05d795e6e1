package config

import (
	"fmt"
	"strings"

	"github.com/rohankatakam/gitart/internal/logging"
)

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", warn))
		}
	}

	return sb.String()
}

var validTargets = map[string]bool{
	"nodejs": true, "node": true, "js": true,
	"bash": true, "sh": true,
	"powershell": true, "ps1": true, "pwsh": true,
}

// Validate checks ranges and enumerations. Missing API keys are warnings:
// the painter works without AI.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true}

	if c.Paint.DefaultLevel < 1 || c.Paint.DefaultLevel > 4 {
		result.AddError("paint.default_level must be between 1 and 4, got %d", c.Paint.DefaultLevel)
	}
	if c.Paint.RandomizeCount < 1 || c.Paint.RandomizeCount > 1000 {
		result.AddError("paint.randomize_count must be between 1 and 1000, got %d", c.Paint.RandomizeCount)
	}
	if c.Paint.DefaultYears < 1 || c.Paint.DefaultYears > 5 {
		result.AddError("paint.default_years must be between 1 and 5, got %d", c.Paint.DefaultYears)
	}

	if !validTargets[strings.ToLower(c.Export.Target)] {
		result.AddError("export.target %q is not one of nodejs, bash, powershell", c.Export.Target)
	}
	if c.Export.CommitHour < 0 || c.Export.CommitHour > 23 {
		result.AddError("export.commit_hour must be between 0 and 23, got %d", c.Export.CommitHour)
	}
	if c.Export.DataFile == "" {
		result.AddError("export.data_file cannot be empty")
	}

	switch c.AI.Provider {
	case "gemini":
		if c.AI.GeminiKey == "" {
			result.AddWarning("GEMINI_API_KEY not set, AI suggestions are disabled")
		}
	case "openai":
		if c.AI.OpenAIKey == "" {
			result.AddWarning("OPENAI_API_KEY not set, AI suggestions are disabled")
		}
	case "none", "":
	default:
		result.AddError("ai.provider %q is not one of gemini, openai, none", c.AI.Provider)
	}
	if c.AI.RequestsPerMinute < 1 {
		result.AddError("ai.requests_per_minute must be positive, got %d", c.AI.RequestsPerMinute)
	}
	if c.AI.Timeout <= 0 {
		result.AddError("ai.timeout must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		result.AddWarning("log.level %q not recognized, using info", c.Log.Level)
	}

	if len(result.Warnings) > 0 {
		logging.Component("config").Debug("configuration warnings", "count", len(result.Warnings))
	}

	return result
}
