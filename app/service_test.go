package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wenchichenginl/HERON/config"
	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o755); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const flatCase = `case:
  name: "flat-demo"
  time:
    start: 0
    end: 10
    num: 5
components:
  - name: "plant"
    produces: ["electricity"]
  - name: "grid"
    consumes: ["electricity"]
dispatcher:
  type: "flat"
  conf:
    level: 2.5
metrics:
  sinks:
    - type: "nop"
`

func TestServiceRunFlat(t *testing.T) {
	dir := writeFiles(t, map[string]string{"case.yaml": flatCase})
	cfg, err := config.Load(filepath.Join(dir, "case.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()
	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	states, err := svc.Run(ctx, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	for _, st := range states {
		values, ok := st.Series("plant", "electricity")
		if !ok || values[0] != 2.5 {
			t.Fatalf("unexpected series: %v ok=%v", values, ok)
		}
	}

	// Two activity records landed in the JSONL store in the run dir.
	store, err := dispatchlog.NewJSONLStore(filepath.Join(dir, "dispatch.jsonl"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	recs, err := store.Query(ctx, dispatchlog.LogQuery{Case: "flat-demo"})
	if err != nil {
		t.Fatalf("query store: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 log records, got %d", len(recs))
	}
	if recs[0].Totals["electricity"] != 2.5*5*2 {
		t.Fatalf("unexpected totals: %v", recs[0].Totals)
	}
	if recs[1].Period != 1 || recs[1].Dispatcher != "flat" {
		t.Fatalf("unexpected record: %+v", recs[1])
	}
}

const abceModule = `#!/bin/sh
in=$(cat)
case "$in" in
*'"op":"probe"'*)
	echo '{"version":1,"ok":true,"module":{"name":"const","capabilities":["dispatch"]}}'
	;;
*)
	echo '{"version":1,"ok":true,"state":{"time":[0,5,10],"activity":{"plant":{"electricity":[3,3,3]}}}}'
	;;
esac
`

const abceCase = `case:
  name: "abce-demo"
  time:
    start: 0
    end: 10
    num: 3
components:
  - name: "plant"
    produces: ["electricity"]
dispatcher:
  type: "abce"
  conf:
    location: "dispatch.sh"
    timeout_seconds: 10
metrics:
  sinks:
    - type: "nop"
`

func TestServiceRunAbce(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"case.yaml":   abceCase,
		"dispatch.sh": abceModule,
	})
	cfg, err := config.Load(filepath.Join(dir, "case.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()
	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	states, err := svc.Run(ctx, 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	values, ok := states[0].Series("plant", "electricity")
	if !ok || len(values) != 3 || values[0] != 3 {
		t.Fatalf("unexpected series from module: %v ok=%v", values, ok)
	}

	store, err := dispatchlog.NewJSONLStore(filepath.Join(dir, "dispatch.jsonl"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	recs, err := store.Query(ctx, dispatchlog.LogQuery{Dispatcher: "abce"})
	if err != nil {
		t.Fatalf("query store: %v", err)
	}
	if len(recs) != 1 || recs[0].Totals["electricity"] != 9 {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if !strings.HasSuffix(recs[0].Module, "dispatch.sh") {
		t.Fatalf("module path not recorded: %+v", recs[0])
	}
}

const failingModule = `#!/bin/sh
in=$(cat)
case "$in" in
*'"op":"probe"'*)
	echo '{"version":1,"ok":true,"module":{"name":"broken","capabilities":["dispatch"]}}'
	;;
*)
	echo '{"version":1,"ok":false,"error":"infeasible dispatch"}'
	;;
esac
`

func TestServiceRecordsDispatchFailure(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"case.yaml":   abceCase,
		"dispatch.sh": failingModule,
	})
	cfg, err := config.Load(filepath.Join(dir, "case.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()
	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	_, err = svc.Run(ctx, 1)
	if err == nil || !strings.Contains(err.Error(), "infeasible dispatch") {
		t.Fatalf("expected module error, got %v", err)
	}

	store, err := dispatchlog.NewJSONLStore(filepath.Join(dir, "dispatch.jsonl"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	recs, err := store.Query(ctx, dispatchlog.LogQuery{})
	if err != nil {
		t.Fatalf("query store: %v", err)
	}
	if len(recs) != 1 || !strings.Contains(recs[0].Error, "infeasible dispatch") {
		t.Fatalf("failure not recorded: %+v", recs)
	}
}

func TestServiceUnknownDispatcher(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"case.yaml": strings.Replace(flatCase, `type: "flat"`, `type: "quantum"`, 1),
	})
	cfg, err := config.Load(filepath.Join(dir, "case.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	_, err = New(cfg)
	if err == nil || !strings.Contains(err.Error(), "quantum") {
		t.Fatalf("expected unknown dispatcher error, got %v", err)
	}
}
