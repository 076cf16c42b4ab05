// Package app wires the cinder runtime together.
//
// # Overview
//
// Context is the composition root: it owns the logger, the event manager,
// and the component registry, and every feature receives its dependencies
// from it explicitly. Nothing in cinder reaches for package-level
// singletons.
//
// The package also ships two always-on components:
//
//   - Monitor subscribes to the event manager and keeps delivery counts
//     and a recent-event ring for the status screen.
//   - Watcher runs a worker that blocks on an fsnotify watch of the config
//     file and broadcasts config.reloaded when it changes on disk.
//
// Both are ordinary Component implementations; they exist so the bus,
// state, and worker machinery is exercised even before any flash workflow
// runs.
package app
