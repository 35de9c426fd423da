package metrics

import "github.com/wenchichenginl/HERON/core/factory"

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a sink factory under the given type name. The builtin
// sinks register themselves from the infra side; importing that package for
// side effects is enough.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// NewSink builds the sink stack from the metrics configuration. An empty
// config list yields a NopSink. Several sinks are fanned out through a
// MultiSink so callers always deal with exactly one.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	sinks := make([]Sink, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
