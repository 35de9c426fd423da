package extmod

import (
	"context"

	"github.com/wenchichenginl/HERON/core/dispatch"
)

// ProtocolVersion is the protocol generation spoken on stdin/stdout.
// Modules answering with a different version are rejected.
const ProtocolVersion = 1

// Operations a module can be asked to perform.
const (
	// OpProbe asks the module to identify itself and list its capabilities
	// without dispatching anything.
	OpProbe = "probe"
	// OpDispatch asks the module to fill the provided state.
	OpDispatch = "dispatch"
)

// Request is the single JSON document written to the module's stdin.
type Request struct {
	Version int             `json:"version"`
	Op      string          `json:"op"`
	Meta    *dispatch.Meta  `json:"meta,omitempty"`
	State   *dispatch.State `json:"state,omitempty"`
}

// Response is the single JSON document the module writes to its stdout.
// Ok=false carries the module's own error text; transport failures are
// reported by the runner instead.
type Response struct {
	Version int             `json:"version"`
	Ok      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Module  *ModuleInfo     `json:"module,omitempty"`
	State   *dispatch.State `json:"state,omitempty"`
}

// ModuleInfo is a module's answer to a probe.
type ModuleInfo struct {
	Name         string   `json:"name,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// Supports reports whether the module advertises the given operation.
func (m *ModuleInfo) Supports(op string) bool {
	if m == nil {
		return false
	}
	for _, c := range m.Capabilities {
		if c == op {
			return true
		}
	}
	return false
}

// Runner loads the module at path and performs one operation against it.
// Implementations must load the module fresh on every call.
type Runner interface {
	// Probe verifies the module can be loaded and returns what it advertises.
	Probe(ctx context.Context, path string) (*ModuleInfo, error)
	// Dispatch hands the module a meta and a zeroed state and returns the
	// state the module filled.
	Dispatch(ctx context.Context, path string, meta *dispatch.Meta, st *dispatch.State) (*dispatch.State, error)
}
