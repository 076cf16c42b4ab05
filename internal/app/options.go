package app

import "github.com/cinder-flash/cinder/internal/logging"

// appConfig holds optional configuration for a Context.
type appConfig struct {
	logger  *logging.Logger
	version string
}

// Option configures a Context.
type Option func(*appConfig)

// WithLogger sets the logger instead of building one from the logging
// config section. Tests use this to inject a NopLogger.
func WithLogger(log *logging.Logger) Option {
	return func(c *appConfig) { c.logger = log }
}

// WithVersion records the build version announced in app.started.
func WithVersion(v string) Option {
	return func(c *appConfig) { c.version = v }
}
