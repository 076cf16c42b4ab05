package app

import (
	"context"
	"errors"
	"sync"

	"github.com/cinder-flash/cinder/internal/config"
	cinderrors "github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/event"
	"github.com/cinder-flash/cinder/internal/events"
	"github.com/cinder-flash/cinder/internal/logging"
	"github.com/cinder-flash/cinder/internal/registry"
)

// Context holds every shared dependency for a cinder process. It is built
// once by New and passed by reference; components never construct their
// own manager or logger.
type Context struct {
	Config     *config.Config
	Log        *logging.Logger
	Events     *event.Manager
	Components *registry.Registry

	mu      sync.Mutex
	started bool
	runCtx  context.Context
	cancel  context.CancelFunc
	version string
}

// New creates a fully wired Context from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Context, error) {
	if cfg == nil {
		return nil, errors.New("app: Config is required")
	}

	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}

	log := ac.logger
	if log == nil {
		var err error
		if cfg.Logging.Enabled {
			log, err = logging.NewLogger(cfg.Logging.LogDir(), cfg.Logging.Level)
			if err != nil {
				return nil, cinderrors.Wrap(err, "creating logger")
			}
		} else {
			log = logging.NopLogger()
		}
	}

	mgr := event.NewManager(log, event.WithStrictQueries(cfg.Events.StrictQueries))

	return &Context{
		Config:     cfg,
		Log:        log,
		Events:     mgr,
		Components: registry.New(log),
		version:    ac.version,
	}, nil
}

// Version returns the build version recorded via WithVersion, or "dev".
func (c *Context) Version() string {
	if c.version == "" {
		return "dev"
	}
	return c.version
}

// Start starts every registered component and announces app.started.
// Returns an error if the context is already started.
func (c *Context) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return cinderrors.ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.runCtx = runCtx
	c.cancel = cancel

	if err := c.Components.StartAll(); err != nil {
		cancel()
		return err
	}
	c.started = true

	c.Log.Info("application started", "version", c.Version())
	c.Events.Broadcast(events.AppStarted.New(nil, &events.AppStartedData{Version: c.Version()}))
	return nil
}

// Done returns a channel closed by Shutdown. Long-running callers (the
// TUI event loop) select on it to exit cleanly. Returns nil before Start.
func (c *Context) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runCtx == nil {
		return nil
	}
	return c.runCtx.Done()
}

// Running reports whether Start has completed and Shutdown has not.
func (c *Context) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Shutdown tears everything down in reverse order: components first (each
// registry entry deinits its subtree children-first), then the event
// manager, then the logger. It is idempotent.
func (c *Context) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	c.started = false
	c.cancel()

	err := c.Components.Deinit()
	c.Events.Deinit()

	c.Log.Info("application stopped")
	if cerr := c.Log.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}
