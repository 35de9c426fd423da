package model

import "fmt"

// Case carries the slice of a HERON case the dispatch layer needs: where the
// case runs on disk and how one dispatch period is discretized. The rest of
// the case definition (economics, cashflows, samplers) is owned by the
// surrounding simulation framework and never crosses into this module.
type Case struct {
	Name   string             `json:"name"`
	RunDir string             `json:"run_dir"`
	Time   TimeDiscretization `json:"time"`
}

// Validate checks the case is usable for dispatch.
func (c Case) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("case name is required")
	}
	return c.Time.Validate()
}

// TimeDiscretization describes the uniform time grid of one dispatch period:
// Num points from Start to End, endpoints inclusive.
type TimeDiscretization struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Num   int     `json:"num"`
}

// Validate rejects grids that cannot represent a period.
func (t TimeDiscretization) Validate() error {
	if t.Num < 2 {
		return fmt.Errorf("time grid needs at least 2 points, got %d", t.Num)
	}
	if t.End <= t.Start {
		return fmt.Errorf("time grid end %v must be after start %v", t.End, t.Start)
	}
	return nil
}
