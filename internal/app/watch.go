package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cinder-flash/cinder/internal/component"
	"github.com/cinder-flash/cinder/internal/event"
	"github.com/cinder-flash/cinder/internal/events"
	"github.com/cinder-flash/cinder/internal/logging"
	"github.com/cinder-flash/cinder/internal/worker"
)

// watchState is the Watcher's guarded payload.
type watchState struct {
	reloads  int
	lastSeen time.Time
}

// Watcher broadcasts config.reloaded whenever the config file changes on
// disk. The blocking fsnotify loop runs on a worker; the component's
// Update polls it so a broken watch surfaces as config.watch_failed
// instead of dying silently.
type Watcher struct {
	component.Base

	path     string
	debounce time.Duration
	events   *event.Manager
	log      *logging.Logger

	state  *component.State[watchState]
	worker *worker.Worker[watchState]
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
}

// NewWatcher creates a Watcher for the config file at path. debounce
// coalesces the editor write/rename bursts most save operations produce.
func NewWatcher(path string, debounce time.Duration, events *event.Manager, log *logging.Logger) *Watcher {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		events:   events,
		log:      log.WithComponent("config-watch"),
		state:    component.NewState(watchState{}),
	}
}

// Start opens the fsnotify watch and launches the worker.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, not the file: editors replace files by rename
	// and a file watch dies with the old inode.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw

	wk, err := worker.New("config-watch", w.state, w.run, worker.WithLogger[watchState](w.log))
	if err != nil {
		fsw.Close()
		return err
	}
	w.worker = wk

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	return w.worker.Start(ctx)
}

// run blocks on the fsnotify channels until the context is canceled.
func (w *Watcher) run(ctx context.Context, st *component.State[watchState]) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case fe, ok := <-w.fsw.Events:
			if !ok {
				// Deinit closes the watch right after canceling; only an
				// unexpected close is an error.
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watch closed for %s", w.path)
			}
			if !w.relevant(fe) {
				continue
			}
			if !w.admit(st) {
				continue
			}
			w.log.Debug("config file changed", "op", fe.Op.String())
			w.events.Broadcast(events.ConfigReloaded.New(w, &events.ConfigReloadedData{Path: w.path}))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watch closed for %s", w.path)
			}
			return err
		}
	}
}

// relevant reports whether a directory event concerns the watched file.
func (w *Watcher) relevant(fe fsnotify.Event) bool {
	if filepath.Clean(fe.Name) != filepath.Clean(w.path) {
		return false
	}
	return fe.Op.Has(fsnotify.Write) || fe.Op.Has(fsnotify.Create) || fe.Op.Has(fsnotify.Rename)
}

// admit applies the debounce window and records the reload.
func (w *Watcher) admit(st *component.State[watchState]) bool {
	now := time.Now()
	admitted := false
	st.With(func(s *watchState) {
		if w.debounce > 0 && now.Sub(s.lastSeen) < w.debounce {
			return
		}
		s.lastSeen = now
		s.reloads++
		admitted = true
	})
	return admitted
}

// Update polls the worker. The loop only finishes early when the watch
// broke, so a completed round is reported as config.watch_failed.
func (w *Watcher) Update() error {
	if w.worker == nil || !w.worker.Poll() {
		return nil
	}
	err := w.worker.Join()
	if err == nil {
		return nil
	}
	w.log.Error("config watch failed", "error", err.Error())
	w.events.Broadcast(events.ConfigWatchFailed.New(w, &events.ConfigWatchFailedData{Err: err.Error()}))
	return nil
}

// Reloads returns how many reload broadcasts have been admitted.
func (w *Watcher) Reloads() int {
	st := w.state.Lock()
	defer w.state.Unlock()
	return st.reloads
}

// Draw renders a one-line watch summary.
func (w *Watcher) Draw() string {
	return fmt.Sprintf("watching %s (%d reloads)", w.path, w.Reloads())
}

// Deinit stops the worker and closes the watch.
func (w *Watcher) Deinit() error {
	if w.cancel != nil {
		w.cancel()
	}
	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
	}
	if w.worker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if werr := w.worker.Wait(ctx); werr == nil {
			// A cancellation-driven exit joins clean; anything else is a
			// real watch failure worth surfacing from teardown.
			if jerr := w.worker.Join(); jerr != nil {
				err = errors.Join(err, jerr)
			}
		}
	}
	return err
}
