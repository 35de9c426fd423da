package metrics

import "time"

// ActivityRecord summarizes one resource's dispatched activity in a period.
type ActivityRecord struct {
	Case       string
	Period     int
	Dispatcher string
	Resource   string
	Total      float64
	Mean       float64
	Peak       float64
	Time       time.Time
}

// Sink records activity summaries for observability purposes.
type Sink interface {
	RecordActivity(records []ActivityRecord) error
}

// DispatchEvent captures one dispatch call end to end.
type DispatchEvent struct {
	DispatchID string
	Case       string
	Period     int
	Dispatcher string
	Module     string
	Duration   time.Duration
	Unfilled   int
	Error      string
	Time       time.Time
}

// DispatchEventRecorder is implemented by sinks able to record whole calls.
type DispatchEventRecorder interface {
	RecordDispatchEvent(ev DispatchEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordActivity([]ActivityRecord) error { return nil }

func (NopSink) RecordDispatchEvent(DispatchEvent) error { return nil }
