package dispatch

import (
	"context"
	"testing"

	"github.com/wenchichenginl/HERON/core/model"
)

func TestFlatDispatcher(t *testing.T) {
	components := []model.Component{
		{Name: "A", Produces: []string{"p"}},
		{Name: "B", Consumes: []string{"p"}},
	}
	c := model.Case{
		Name:   "flat-case",
		RunDir: t.TempDir(),
		Time:   model.TimeDiscretization{Start: 0, End: 10, Num: 5},
	}

	d := NewFlatDispatcher(FlatConfig{Level: 2.5}, nil)
	if d.Name() != "flat" {
		t.Fatalf("unexpected name %q", d.Name())
	}
	if err := d.Initialize(context.Background(), c, components, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	meta := &Meta{
		ID:         "test",
		Case:       c,
		Components: components,
		Indexer:    model.NewResourceIndexer(components),
	}
	st, err := d.Dispatch(context.Background(), meta)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if st.NumSeries() != 2 {
		t.Fatalf("expected 2 series, got %d", st.NumSeries())
	}
	for _, pair := range [][2]string{{"A", "p"}, {"B", "p"}} {
		values, ok := st.Series(pair[0], pair[1])
		if !ok {
			t.Fatalf("missing series %s/%s", pair[0], pair[1])
		}
		for i, v := range values {
			if v != 2.5 {
				t.Errorf("series %s/%s[%d] = %v, want 2.5", pair[0], pair[1], i, v)
			}
		}
	}
	if missing := st.Unfilled(meta.Indexer); len(missing) != 0 {
		t.Fatalf("flat dispatch left unfilled slots: %v", missing)
	}
}

func TestFlatDispatcherBadGrid(t *testing.T) {
	d := NewFlatDispatcher(FlatConfig{Level: 1}, nil)
	meta := &Meta{Case: model.Case{Time: model.TimeDiscretization{Start: 0, End: 10, Num: 1}}}
	if _, err := d.Dispatch(context.Background(), meta); err == nil {
		t.Fatal("expected error for single-point grid")
	}
}
