package abce

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/core/extmod"
	"github.com/wenchichenginl/HERON/core/logger"
	"github.com/wenchichenginl/HERON/core/model"
)

// Dispatcher delegates dispatch decisions to an external ABCE module. The
// module is probed once at Initialize to fail fast on a broken setup, then
// re-resolved and re-loaded on every Dispatch call: users edit the module
// file mid-campaign and expect the next period to pick the edit up.
type Dispatcher struct {
	settings Settings
	runner   extmod.Runner
	lookup   LookupEnv
	log      logger.Logger

	c          model.Case
	components []model.Component
	sources    []model.Source
	idx        model.ResourceIndexer
	path       string
}

// New builds the adapter around a runner. lookup defaults to os.LookupEnv
// and log to the no-op logger.
func New(settings Settings, runner extmod.Runner, lookup LookupEnv, log logger.Logger) (*Dispatcher, error) {
	if runner == nil {
		return nil, fmt.Errorf("abce: runner is required")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("abce: %w", err)
	}
	return &Dispatcher{settings: settings, runner: runner, lookup: lookup, log: log}, nil
}

func (d *Dispatcher) Name() string { return "abce" }

// Initialize resolves the module location, checks the file exists and probes
// it for the dispatch capability. Resolution and probe failures surface here
// rather than on the first period.
func (d *Dispatcher) Initialize(ctx context.Context, c model.Case, components []model.Component, sources []model.Source) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("abce: %w", err)
	}
	if err := d.settings.ResolveLocation(d.lookup, d.log); err != nil {
		return err
	}
	path, err := extmod.Resolve(c.RunDir, d.settings.Location)
	if err != nil {
		return fmt.Errorf("abce: %w", err)
	}
	d.log.Infof("loading abce dispatch module at %q", path)
	info, err := d.runner.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("abce: probe: %w", err)
	}
	if !info.Supports(extmod.OpDispatch) {
		return fmt.Errorf("abce: module %q does not implement %s", path, extmod.OpDispatch)
	}

	d.c = c
	d.components = components
	d.sources = sources
	d.idx = model.NewResourceIndexer(components)
	d.path = path
	return nil
}

// Dispatch builds the period's time grid and a zeroed state, loads the
// module fresh and returns the state the module filled.
func (d *Dispatcher) Dispatch(ctx context.Context, meta *dispatch.Meta) (*dispatch.State, error) {
	if d.path == "" {
		return nil, fmt.Errorf("abce: dispatcher not initialized")
	}
	grid, err := dispatch.NewTimeGrid(d.c.Time.Start, d.c.Time.End, d.c.Time.Num)
	if err != nil {
		return nil, fmt.Errorf("abce: %w", err)
	}
	// Re-resolve so a module deleted or moved mid-campaign fails with the
	// location error, not an opaque exec failure.
	path, err := extmod.Resolve(d.c.RunDir, d.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("abce: %w", err)
	}

	d.fillMeta(meta)
	st := dispatch.NewState(d.components, d.idx, grid)

	dispatch.CountModuleLoad()
	start := time.Now()
	out, err := d.runner.Dispatch(ctx, path, meta, st)
	dispatch.ObserveDispatch(d.Name(), time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("abce: %w", err)
	}

	if len(out.Time) == 0 {
		out.Time = grid
	}
	if err := out.Conform(d.idx, len(grid)); err != nil {
		return nil, fmt.Errorf("abce: module %s returned malformed state: %w", filepath.Base(path), err)
	}
	unfilled := out.Unfilled(d.idx)
	dispatch.ObserveUnfilled(d.Name(), len(unfilled))
	if len(unfilled) > 0 {
		d.log.Warnf("dispatch left %d series unfilled: %v", len(unfilled), unfilled)
	}
	return out, nil
}

// ModulePath returns the path resolved at Initialize, for diagnostics.
func (d *Dispatcher) ModulePath() string { return d.path }

// fillMeta completes the meta sent to the module with everything the
// adapter knows, leaving caller-provided fields alone.
func (d *Dispatcher) fillMeta(meta *dispatch.Meta) {
	if meta.Case.Name == "" {
		meta.Case = d.c
	}
	if len(meta.Components) == 0 {
		meta.Components = d.components
	}
	if len(meta.Sources) == 0 {
		meta.Sources = d.sources
	}
	if meta.Indexer == nil {
		meta.Indexer = d.idx
	}
	if meta.Settings == nil {
		meta.Settings = d.settings
	}
}
