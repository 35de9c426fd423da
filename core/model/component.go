package model

import "fmt"

// Component is one economic unit of the simulated system (a plant, a grid
// connection, a storage unit). Dispatch only cares about which resources the
// component exchanges; capacities, costs and transfer functions stay with
// the framework.
type Component struct {
	Name     string   `json:"name"`
	Produces []string `json:"produces,omitempty"`
	Consumes []string `json:"consumes,omitempty"`
	Stores   []string `json:"stores,omitempty"`
}

// Resources returns every resource the component interacts with, in
// declaration order, without duplicates.
func (c Component) Resources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range [][]string{c.Produces, c.Consumes, c.Stores} {
		for _, r := range group {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the component declaration is usable for dispatch.
func (c Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component name is required")
	}
	if len(c.Resources()) == 0 {
		return fmt.Errorf("component %q exchanges no resources", c.Name)
	}
	return nil
}

// Source points the external dispatcher at a static input signal (an ARMA
// model, a CSV history, a function). Sources are forwarded verbatim; only
// the external module interprets them.
type Source struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// ResourceIndexer maps each component name to the resources it can exchange.
// It sizes the dispatch state: one activity series per (component, resource)
// pair.
type ResourceIndexer map[string][]string

// NewResourceIndexer builds the indexer from component declarations.
func NewResourceIndexer(components []Component) ResourceIndexer {
	idx := make(ResourceIndexer, len(components))
	for _, c := range components {
		idx[c.Name] = c.Resources()
	}
	return idx
}

// NumSeries returns the total number of (component, resource) pairs.
func (idx ResourceIndexer) NumSeries() int {
	n := 0
	for _, res := range idx {
		n += len(res)
	}
	return n
}
