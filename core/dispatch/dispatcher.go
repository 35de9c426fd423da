package dispatch

import (
	"context"

	"github.com/wenchichenginl/HERON/core/factory"
	"github.com/wenchichenginl/HERON/core/model"
)

// Dispatcher computes the activity of every component resource over one
// dispatch period.
//
// Lifecycle: the factory configures the dispatcher from its raw config
// block, Initialize runs once per case and should fail fast on anything
// that would doom later periods, then Dispatch runs once per period.
// Dispatchers are used sequentially within a run; implementations need no
// internal locking.
type Dispatcher interface {
	Name() string
	// Initialize prepares the dispatcher for the given case.
	Initialize(ctx context.Context, c model.Case, components []model.Component, sources []model.Source) error
	// Dispatch computes activity for the period described by meta. The
	// returned state is the authoritative result; callers must not assume
	// any input buffer was filled in place.
	Dispatch(ctx context.Context, meta *Meta) (*State, error)
}

// Meta is the keyed bundle handed to a dispatcher for one invocation.
type Meta struct {
	// ID uniquely identifies this invocation in logs and sink records.
	ID     string     `json:"id"`
	Case   model.Case `json:"case"`
	Period int        `json:"period"`

	Components []model.Component     `json:"components"`
	Sources    []model.Source        `json:"sources,omitempty"`
	Indexer    model.ResourceIndexer `json:"resource_indexer"`

	// Settings carries dispatcher-specific settings across the module
	// boundary; the concrete type is owned by the dispatcher that set it.
	Settings any `json:"settings,omitempty"`
}

var registry = factory.NewRegistry[Dispatcher]()

// Register adds a dispatcher factory identified by type name.
func Register(name string, f factory.Factory[Dispatcher]) error {
	return registry.Register(name, f)
}

// New creates a configured Dispatcher from the case file's dispatcher block.
func New(cfg factory.ModuleConfig) (Dispatcher, error) {
	return registry.Create(cfg)
}
