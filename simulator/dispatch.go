package main

import (
	"fmt"

	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/core/extmod"
)

func handle(cfg Config, req *extmod.Request) *extmod.Response {
	if req.Version != extmod.ProtocolVersion {
		return errResponse(fmt.Sprintf("unsupported protocol %d", req.Version))
	}
	switch req.Op {
	case extmod.OpProbe:
		return &extmod.Response{
			Version: extmod.ProtocolVersion,
			Ok:      true,
			Module:  &extmod.ModuleInfo{Name: "simulator", Capabilities: []string{extmod.OpDispatch}},
		}
	case extmod.OpDispatch:
		if cfg.Fail != "" {
			return errResponse(cfg.Fail)
		}
		st, err := fill(cfg, req)
		if err != nil {
			return errResponse(err.Error())
		}
		return &extmod.Response{Version: extmod.ProtocolVersion, Ok: true, State: st}
	default:
		return errResponse(fmt.Sprintf("unknown op %q", req.Op))
	}
}

func errResponse(msg string) *extmod.Response {
	return &extmod.Response{Version: extmod.ProtocolVersion, Ok: false, Error: msg}
}

// fill computes one activity series per (component, resource) pair: flat at
// the configured level, or ramping from zero to level over the period.
func fill(cfg Config, req *extmod.Request) (*dispatch.State, error) {
	meta := req.Meta
	if meta == nil {
		return nil, fmt.Errorf("dispatch request carries no meta")
	}
	grid, err := dispatch.NewTimeGrid(meta.Case.Time.Start, meta.Case.Time.End, meta.Case.Time.Num)
	if err != nil {
		return nil, err
	}
	st := dispatch.NewState(meta.Components, meta.Indexer, grid)
	n := len(grid)
	for comp, series := range st.Activity {
		for r := range series {
			values := make([]float64, n)
			for i := range values {
				if cfg.Ramp {
					values[i] = cfg.Level * float64(i) / float64(n-1)
				} else {
					values[i] = cfg.Level
				}
			}
			if err := st.SetSeries(comp, r, values); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}
