// Package dispatch defines the strategy contract for computing per-period
// resource activity in a HERON case.
//
// A Dispatcher receives the case, its components and sources once at
// initialization, then one Meta bundle per dispatch period. It returns a
// State: one activity series per (component, resource) pair over the
// period's time grid.
//
// Key pieces:
//   - Dispatcher: the pluggable strategy interface (selected by type name
//     through the registry, configured from the case file's dispatcher block).
//   - Meta: the keyed bundle handed to each invocation, including the
//     resource indexer that sizes the state.
//   - State: the time-indexed activity container exchanged with dispatchers.
//
// Strategies with real optimization logic live outside this package; the
// builtin flat dispatcher exists for wiring checks and dry runs only.
package dispatch
