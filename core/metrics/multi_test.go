package metrics

import "testing"

// TestMultiSink ensures records are forwarded to all sinks.

type recordSink struct {
	activities int
	events     int
}

func (r *recordSink) RecordActivity([]ActivityRecord) error {
	r.activities++
	return nil
}

func (r *recordSink) RecordDispatchEvent(DispatchEvent) error {
	r.events++
	return nil
}

// plainSink supports only the base interface.
type plainSink struct {
	activities int
}

func (p *plainSink) RecordActivity([]ActivityRecord) error {
	p.activities++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordActivity(nil); err != nil {
		t.Fatalf("record activity: %v", err)
	}
	if err := m.RecordDispatchEvent(DispatchEvent{}); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if s1.activities != 1 || s2.activities != 1 {
		t.Fatalf("activity not forwarded")
	}
	if s1.events != 1 || s2.events != 1 {
		t.Fatalf("events not forwarded")
	}
}

func TestMultiSinkSkipsUnsupportedRecorder(t *testing.T) {
	plain := &plainSink{}
	rec := &recordSink{}
	m := NewMultiSink(plain, rec)
	if err := m.RecordDispatchEvent(DispatchEvent{}); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if rec.events != 1 {
		t.Fatal("event not forwarded to capable sink")
	}
	if err := m.RecordActivity(nil); err != nil {
		t.Fatalf("record activity: %v", err)
	}
	if plain.activities != 1 {
		t.Fatal("activity not forwarded to plain sink")
	}
}
