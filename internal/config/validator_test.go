package config

import (
	"strings"
	"testing"
)

func TestValidateCatchesErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "zero refresh rate",
			mutate: func(c *Config) { c.UI.RefreshRateMs = 0 },
			field:  "ui.refresh_rate_ms",
		},
		{
			name:   "unknown theme",
			mutate: func(c *Config) { c.UI.Theme = "neon" },
			field:  "ui.theme",
		},
		{
			name:   "negative event log lines",
			mutate: func(c *Config) { c.UI.MaxEventLogLines = -1 },
			field:  "ui.max_event_log_lines",
		},
		{
			name:   "zero block size",
			mutate: func(c *Config) { c.Flash.BlockSizeKB = 0 },
			field:  "flash.block_size_kb",
		},
		{
			name:   "oversized block",
			mutate: func(c *Config) { c.Flash.BlockSizeKB = 128 * 1024 },
			field:  "flash.block_size_kb",
		},
		{
			name:   "negative debounce",
			mutate: func(c *Config) { c.Watch.DebounceMs = -10 },
			field:  "watch.debounce_ms",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "loud" },
			field:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, err := range errs {
				if err.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, ValidationErrors(errs))
			}
		})
	}
}

func TestValidateCollectsMultiple(t *testing.T) {
	cfg := Default()
	cfg.UI.RefreshRateMs = -1
	cfg.Flash.BlockSizeKB = 0
	cfg.Logging.Level = "nope"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), ValidationErrors(errs))
	}
}

func TestValidationErrorsString(t *testing.T) {
	if got := ValidationErrors(nil).Error(); got != "" {
		t.Errorf("empty ValidationErrors.Error() = %q, want empty", got)
	}

	single := ValidationErrors{{Field: "ui.theme", Value: "neon", Message: "bad"}}
	if got := single.Error(); !strings.Contains(got, "ui.theme") {
		t.Errorf("single error missing field: %q", got)
	}

	multi := ValidationErrors{
		{Field: "a", Value: 1, Message: "x"},
		{Field: "b", Value: 2, Message: "y"},
	}
	got := multi.Error()
	if !strings.Contains(got, "2 validation errors") {
		t.Errorf("multi error missing count: %q", got)
	}
}

func TestEmptyThemeAndLevelAllowed(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = ""
	cfg.Logging.Level = ""
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("empty theme/level should be allowed, got: %v", ValidationErrors(errs))
	}
}
