package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/core/model"
)

func sampleStates(t *testing.T) []*dispatch.State {
	t.Helper()
	grid, err := dispatch.NewTimeGrid(0, 10, 3)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	idx := model.ResourceIndexer{"plant": {"electricity"}, "storage": {"electricity", "heat"}}
	st := dispatch.NewState([]model.Component{{Name: "plant"}, {Name: "storage"}}, idx, grid)
	if err := st.SetSeries("plant", "electricity", []float64{1.5, 2, 2.5}); err != nil {
		t.Fatalf("set series: %v", err)
	}
	return []*dispatch.State{st}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleStates(t)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected header plus 9 rows, got %d lines", len(lines))
	}
	if lines[0] != "period,component,resource,time,activity" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "0,plant,electricity,0,1.5" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// Storage series were never set and export as zeros.
	if lines[4] != "0,storage,electricity,0,0" {
		t.Errorf("unexpected storage row: %s", lines[4])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleStates(t)); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded []*dispatch.State
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	values, ok := decoded[0].Series("plant", "electricity")
	if !ok || values[1] != 2 {
		t.Fatalf("unexpected series after round trip: %v ok=%v", values, ok)
	}
}
