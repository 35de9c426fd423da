package metrics

// MultiSink fanouts records to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordActivity forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordActivity(records []ActivityRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordActivity(records); err != nil {
			return err
		}
	}
	return nil
}

// RecordDispatchEvent forwards the event to sinks that support it.
func (m *MultiSink) RecordDispatchEvent(ev DispatchEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DispatchEventRecorder); ok {
			if err := rec.RecordDispatchEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
