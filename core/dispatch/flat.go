package dispatch

import (
	"context"
	"fmt"

	"github.com/wenchichenginl/HERON/core/logger"
	"github.com/wenchichenginl/HERON/core/model"
)

// FlatConfig configures the flat dispatcher.
type FlatConfig struct {
	// Level is the constant activity level written into every series.
	Level float64 `json:"level"`
}

// FlatDispatcher fills every (component, resource) series with a constant
// level. It is the builtin baseline strategy, useful for smoke runs and for
// exercising the pipeline without an external module.
type FlatDispatcher struct {
	level float64
	idx   model.ResourceIndexer
	log   logger.Logger
}

// NewFlatDispatcher builds a flat dispatcher writing level into every slot.
func NewFlatDispatcher(cfg FlatConfig, log logger.Logger) *FlatDispatcher {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &FlatDispatcher{level: cfg.Level, log: log}
}

func (d *FlatDispatcher) Name() string { return "flat" }

func (d *FlatDispatcher) Initialize(_ context.Context, c model.Case, components []model.Component, _ []model.Source) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("flat dispatcher: %w", err)
	}
	d.idx = model.NewResourceIndexer(components)
	d.log.Infof("flat dispatcher ready: level=%v series=%d", d.level, d.idx.NumSeries())
	return nil
}

func (d *FlatDispatcher) Dispatch(_ context.Context, meta *Meta) (*State, error) {
	grid, err := NewTimeGrid(meta.Case.Time.Start, meta.Case.Time.End, meta.Case.Time.Num)
	if err != nil {
		return nil, fmt.Errorf("flat dispatcher: %w", err)
	}
	idx := meta.Indexer
	if idx == nil {
		idx = d.idx
	}
	st := NewState(meta.Components, idx, grid)
	for comp, resources := range st.Activity {
		for r := range resources {
			values := make([]float64, len(grid))
			for i := range values {
				values[i] = d.level
			}
			st.Activity[comp][r] = values
		}
	}
	return st, nil
}
