// Package export serializes dispatched states for downstream tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/wenchichenginl/HERON/core/dispatch"
)

// WriteJSON writes the dispatched states to w in JSON format, one state per
// period in dispatch order.
func WriteJSON(w io.Writer, states []*dispatch.State) error {
	enc := json.NewEncoder(w)
	return enc.Encode(states)
}

// WriteCSV writes the dispatched states to w in long CSV format: one row per
// (period, component, resource, time) sample.
func WriteCSV(w io.Writer, states []*dispatch.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "component", "resource", "time", "activity"}); err != nil {
		return err
	}
	for p, st := range states {
		period := strconv.Itoa(p)
		for _, comp := range st.Components() {
			series := st.Activity[comp]
			resources := make([]string, 0, len(series))
			for r := range series {
				resources = append(resources, r)
			}
			sort.Strings(resources)
			for _, r := range resources {
				for i, v := range series[r] {
					rec := []string{
						period,
						comp,
						r,
						strconv.FormatFloat(st.Time[i], 'f', -1, 64),
						strconv.FormatFloat(v, 'f', -1, 64),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
