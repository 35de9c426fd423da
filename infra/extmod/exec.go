// Package extmod provides the process-based runner for external dispatch
// modules. Each call spawns the module file as a child process and speaks
// the extmod JSON protocol over its stdin/stdout.
package extmod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/core/extmod"
	"github.com/wenchichenginl/HERON/core/logger"
)

// stderrTailBytes bounds how much module stderr is quoted in errors.
const stderrTailBytes = 512

// ExecRunner runs the module file as a child process, once per call. Nothing
// is cached between calls, so module edits take effect immediately.
type ExecRunner struct {
	timeout time.Duration
	log     logger.Logger
}

// NewExecRunner builds a runner. A zero timeout means calls are bounded only
// by the caller's context.
func NewExecRunner(timeout time.Duration, log logger.Logger) *ExecRunner {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ExecRunner{timeout: timeout, log: log}
}

// Probe starts the module and asks it to identify itself.
func (r *ExecRunner) Probe(ctx context.Context, path string) (*extmod.ModuleInfo, error) {
	resp, err := r.invoke(ctx, path, &extmod.Request{
		Version: extmod.ProtocolVersion,
		Op:      extmod.OpProbe,
	})
	if err != nil {
		return nil, err
	}
	if resp.Module == nil {
		return nil, fmt.Errorf("module %s answered probe without module info", filepath.Base(path))
	}
	return resp.Module, nil
}

// Dispatch hands the module the meta and zeroed state and returns the state
// the module filled.
func (r *ExecRunner) Dispatch(ctx context.Context, path string, meta *dispatch.Meta, st *dispatch.State) (*dispatch.State, error) {
	resp, err := r.invoke(ctx, path, &extmod.Request{
		Version: extmod.ProtocolVersion,
		Op:      extmod.OpDispatch,
		Meta:    meta,
		State:   st,
	})
	if err != nil {
		return nil, err
	}
	if resp.State == nil {
		return nil, fmt.Errorf("module %s returned no state", filepath.Base(path))
	}
	return resp.State, nil
}

func (r *ExecRunner) invoke(ctx context.Context, path string, req *extmod.Request) (*extmod.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Op, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := command(ctx, path)
	// Modules read companion files relative to their own directory.
	cmd.Dir = filepath.Dir(path)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debugf("invoking module %s op=%s", path, req.Op)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("module %s (%s): %w%s", filepath.Base(path), req.Op, err, tail(&stderr))
	}

	var resp extmod.Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("module %s (%s): invalid JSON response: %w%s", filepath.Base(path), req.Op, err, tail(&stderr))
	}
	if resp.Version != extmod.ProtocolVersion {
		return nil, fmt.Errorf("module %s speaks protocol %d, want %d", filepath.Base(path), resp.Version, extmod.ProtocolVersion)
	}
	if !resp.Ok {
		return nil, fmt.Errorf("module %s (%s) failed: %s", filepath.Base(path), req.Op, resp.Error)
	}
	return &resp, nil
}

// command picks the interpreter from the file extension so modules do not
// need an executable bit or shebang to be usable.
func command(ctx context.Context, path string) *exec.Cmd {
	switch filepath.Ext(path) {
	case ".py":
		return exec.CommandContext(ctx, "python3", path)
	case ".sh":
		return exec.CommandContext(ctx, "sh", path)
	default:
		return exec.CommandContext(ctx, path)
	}
}

func tail(stderr *bytes.Buffer) string {
	s := strings.TrimSpace(stderr.String())
	if s == "" {
		return ""
	}
	if len(s) > stderrTailBytes {
		s = s[len(s)-stderrTailBytes:]
	}
	return "; stderr: " + s
}
