package logging

import (
	"context"
	"time"
)

// LogRecord captures one dispatch call and its outcome.
type LogRecord struct {
	Timestamp  time.Time          `json:"timestamp"`
	DispatchID string             `json:"dispatch_id"`
	Case       string             `json:"case"`
	Period     int                `json:"period"`
	Dispatcher string             `json:"dispatcher"`
	Module     string             `json:"module,omitempty"`
	DurationMS float64            `json:"duration_ms"`
	Totals     map[string]float64 `json:"totals,omitempty"`
	Unfilled   []string           `json:"unfilled,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// LogQuery defines filters for retrieving records. Zero-valued fields
// match everything.
type LogQuery struct {
	Start      time.Time
	End        time.Time
	Case       string
	Dispatcher string
}

// Matches reports whether rec passes every filter set on q.
func (q LogQuery) Matches(rec LogRecord) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Case != "" && rec.Case != q.Case {
		return false
	}
	if q.Dispatcher != "" && rec.Dispatcher != q.Dispatcher {
		return false
	}
	return true
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// NopStore discards records. It backs the "none" logging backend.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error { return nil }

func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) { return nil, nil }

func (NopStore) Close() error { return nil }

