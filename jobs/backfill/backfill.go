// Package backfill replays recorded dispatch history into metrics sinks,
// repopulating dashboards after a sink outage or a fresh provisioning.
package backfill

import (
	"context"
	"sort"
	"time"

	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
)

// Run reads records matching q from the store and replays them into the
// sink: one activity record per resource total, plus one dispatch event per
// record when the sink records events. Totals are the only aggregate the log
// retains, so mean and peak stay zero. Returns the number of dispatches
// replayed.
func Run(ctx context.Context, store dispatchlog.LogStore, sink coremetrics.Sink, q dispatchlog.LogQuery) (int, error) {
	recs, err := store.Query(ctx, q)
	if err != nil {
		return 0, err
	}
	recorder, _ := sink.(coremetrics.DispatchEventRecorder)
	n := 0
	for _, rec := range recs {
		resources := make([]string, 0, len(rec.Totals))
		for r := range rec.Totals {
			resources = append(resources, r)
		}
		sort.Strings(resources)
		acts := make([]coremetrics.ActivityRecord, 0, len(resources))
		for _, r := range resources {
			acts = append(acts, coremetrics.ActivityRecord{
				Case:       rec.Case,
				Period:     rec.Period,
				Dispatcher: rec.Dispatcher,
				Resource:   r,
				Total:      rec.Totals[r],
				Time:       rec.Timestamp,
			})
		}
		if len(acts) > 0 {
			if err := sink.RecordActivity(acts); err != nil {
				return n, err
			}
		}
		if recorder != nil {
			ev := coremetrics.DispatchEvent{
				DispatchID: rec.DispatchID,
				Case:       rec.Case,
				Period:     rec.Period,
				Dispatcher: rec.Dispatcher,
				Module:     rec.Module,
				Duration:   time.Duration(rec.DurationMS * float64(time.Millisecond)),
				Unfilled:   len(rec.Unfilled),
				Error:      rec.Error,
				Time:       rec.Timestamp,
			}
			if err := recorder.RecordDispatchEvent(ev); err != nil {
				return n, err
			}
		}
		n++
	}
	return n, nil
}
