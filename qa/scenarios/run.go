package scenarios

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/core/factory"
	"github.com/wenchichenginl/HERON/core/model"
)

// RunScenario executes the scenario end to end: it builds the configured
// dispatcher, runs the requested periods and compares totals and unfilled
// counts against the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	dir := t.TempDir()
	if sc.Module != "" {
		if err := os.WriteFile(filepath.Join(dir, "dispatch.sh"), []byte(sc.Module), 0o755); err != nil {
			t.Fatalf("write module: %v", err)
		}
	}

	c := model.Case{
		Name:   sc.Name,
		RunDir: dir,
		Time:   model.TimeDiscretization{Start: sc.Case.Start, End: sc.Case.End, Num: sc.Case.Num},
	}
	components := make([]model.Component, len(sc.Components))
	for i, def := range sc.Components {
		components[i] = def.ToModel()
	}
	idx := model.NewResourceIndexer(components)

	d, err := dispatch.New(factory.ModuleConfig{Type: sc.Dispatcher.Type, Conf: sc.Dispatcher.Conf})
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	ctx := context.Background()
	if err := d.Initialize(ctx, c, components, nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	periods := sc.Periods
	if periods <= 0 {
		periods = 1
	}
	for p := 0; p < periods; p++ {
		meta := &dispatch.Meta{
			ID:         fmt.Sprintf("%s-%d", sc.Name, p),
			Case:       c,
			Period:     p,
			Components: components,
			Indexer:    idx,
		}
		st, err := d.Dispatch(ctx, meta)
		if err != nil {
			t.Fatalf("period %d: %v", p, err)
		}
		got := totals(st)
		for resource, want := range sc.Expected.Totals {
			if math.Abs(got[resource]-want) > 1e-9 {
				t.Errorf("period %d resource %s: total %v, want %v", p, resource, got[resource], want)
			}
		}
		if unfilled := len(st.Unfilled(idx)); unfilled != sc.Expected.Unfilled {
			t.Errorf("period %d: %d unfilled series, want %d", p, unfilled, sc.Expected.Unfilled)
		}
	}
}

func totals(st *dispatch.State) map[string]float64 {
	out := map[string]float64{}
	for _, series := range st.Activity {
		for r, values := range series {
			out[r] += floats.Sum(values)
		}
	}
	return out
}
