package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wenchichenginl/HERON/core/factory"
	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
)

// init registers the builtin sink types with the core factory. The "nop"
// sink discards everything, "prometheus" exposes gauges on the default
// registry (the /metrics server is started separately, from
// Config.PrometheusAddr) and "influx" writes points to an InfluxDB v2
// instance, degrading to nop when the health check fails.
func init() {
	registerSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})
	registerSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSinkWithRegistry(coremetrics.Config{}, prometheus.DefaultRegisterer)
	})
	registerSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}

func registerSink(name string, f factory.Factory[coremetrics.Sink]) {
	_ = coremetrics.RegisterSink(name, f)
}
