package dispatch

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/wenchichenginl/HERON/core/model"
)

// State holds one activity series per (component, resource) pair over a
// period's time grid. It is created zeroed by the orchestrating side and
// filled in by the dispatch strategy; the filled state is the dispatch
// result handed back to the simulation framework.
type State struct {
	Time     []float64                       `json:"time"`
	Activity map[string]map[string][]float64 `json:"activity"`
}

// NewTimeGrid returns num evenly spaced points from start to end, endpoints
// inclusive. Grids need at least two points.
func NewTimeGrid(start, end float64, num int) ([]float64, error) {
	if num < 2 {
		return nil, fmt.Errorf("time grid needs at least 2 points, got %d", num)
	}
	return floats.Span(make([]float64, num), start, end), nil
}

// NewState builds a zero-initialized container: for every component, one
// series of len(time) zeros per resource the indexer assigns to it.
// Components absent from the indexer get no series.
func NewState(components []model.Component, idx model.ResourceIndexer, time []float64) *State {
	st := &State{
		Time:     time,
		Activity: make(map[string]map[string][]float64, len(components)),
	}
	for _, c := range components {
		resources := idx[c.Name]
		if len(resources) == 0 {
			continue
		}
		series := make(map[string][]float64, len(resources))
		for _, r := range resources {
			series[r] = make([]float64, len(time))
		}
		st.Activity[c.Name] = series
	}
	return st
}

// Series returns the activity series for the (component, resource) pair.
func (s *State) Series(component, resource string) ([]float64, bool) {
	res, ok := s.Activity[component]
	if !ok {
		return nil, false
	}
	values, ok := res[resource]
	return values, ok
}

// SetSeries replaces the series for the (component, resource) pair. The
// value count must match the time grid.
func (s *State) SetSeries(component, resource string, values []float64) error {
	if len(values) != len(s.Time) {
		return fmt.Errorf("series %s/%s has %d values, grid has %d points",
			component, resource, len(values), len(s.Time))
	}
	if s.Activity == nil {
		s.Activity = make(map[string]map[string][]float64)
	}
	if s.Activity[component] == nil {
		s.Activity[component] = make(map[string][]float64)
	}
	s.Activity[component][resource] = values
	return nil
}

// NumSeries returns how many (component, resource) series the state holds.
func (s *State) NumSeries() int {
	n := 0
	for _, res := range s.Activity {
		n += len(res)
	}
	return n
}

// Components returns the component names present in the state, sorted.
func (s *State) Components() []string {
	names := make([]string, 0, len(s.Activity))
	for name := range s.Activity {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Conform verifies a state returned by a strategy is structurally sound for
// the given indexer and grid length: the time grid and every present series
// must have exactly gridLen values. Missing series are not an error here;
// completeness is checked separately and only warned about.
func (s *State) Conform(idx model.ResourceIndexer, gridLen int) error {
	if len(s.Time) != gridLen {
		return fmt.Errorf("time grid has %d points, expected %d", len(s.Time), gridLen)
	}
	for comp, res := range s.Activity {
		for r, values := range res {
			if len(values) != gridLen {
				return fmt.Errorf("series %s/%s has %d values, expected %d", comp, r, len(values), gridLen)
			}
		}
	}
	return nil
}

// Unfilled lists "component/resource" pairs the indexer expects but that are
// missing from the state or left entirely at zero. The dispatch contract
// expects every slot filled; this reports, it does not enforce.
func (s *State) Unfilled(idx model.ResourceIndexer) []string {
	var out []string
	for comp, resources := range idx {
		for _, r := range resources {
			values, ok := s.Series(comp, r)
			if !ok || allZero(values) {
				out = append(out, comp+"/"+r)
			}
		}
	}
	sort.Strings(out)
	return out
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}
