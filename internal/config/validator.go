package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ui.refresh_rate_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid UI themes
func ValidThemes() []string {
	return []string{"dark", "light", "none"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateUI()...)
	errors = append(errors, c.validateFlash()...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateUI validates the UIConfig
func (c *Config) validateUI() []ValidationError {
	var errors []ValidationError

	if c.UI.RefreshRateMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ui.refresh_rate_ms",
			Value:   c.UI.RefreshRateMs,
			Message: "must be positive",
		})
	}

	if c.UI.Theme != "" && !slices.Contains(ValidThemes(), c.UI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "ui.theme",
			Value:   c.UI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.UI.MaxEventLogLines < 0 {
		errors = append(errors, ValidationError{
			Field:   "ui.max_event_log_lines",
			Value:   c.UI.MaxEventLogLines,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateFlash validates the FlashConfig
func (c *Config) validateFlash() []ValidationError {
	var errors []ValidationError

	if c.Flash.BlockSizeKB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "flash.block_size_kb",
			Value:   c.Flash.BlockSizeKB,
			Message: "must be positive",
		})
	}

	// Block sizes above 64MB give no throughput benefit and balloon memory
	if c.Flash.BlockSizeKB > 64*1024 {
		errors = append(errors, ValidationError{
			Field:   "flash.block_size_kb",
			Value:   c.Flash.BlockSizeKB,
			Message: "must not exceed 65536 (64MB)",
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
