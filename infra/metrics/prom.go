package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
)

// PromSink records activity summaries in Prometheus metrics.
type PromSink struct {
	activity *prometheus.GaugeVec
	peak     *prometheus.GaugeVec
	events   *prometheus.CounterVec
}

// NewPromSink registers activity metrics on the default Prometheus registerer.
// The Prometheus server is started separately from Config.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	activity := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resource_activity",
		Help: "Total activity dispatched for a resource in the last period",
	}, []string{"case", "dispatcher", "resource"})
	peak := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resource_activity_peak",
		Help: "Peak activity dispatched for a resource in the last period",
	}, []string{"case", "dispatcher", "resource"})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_events_total",
		Help: "Total number of dispatch calls recorded",
	}, []string{"dispatcher", "ok"})

	if err := reg.Register(activity); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			activity = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(peak); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			peak = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{activity: activity, peak: peak, events: events}, nil
}

// RecordActivity sets the per-resource gauges.
func (s *PromSink) RecordActivity(records []coremetrics.ActivityRecord) error {
	for _, r := range records {
		s.activity.WithLabelValues(r.Case, r.Dispatcher, r.Resource).Set(r.Total)
		s.peak.WithLabelValues(r.Case, r.Dispatcher, r.Resource).Set(r.Peak)
	}
	return nil
}

// RecordDispatchEvent counts the call by outcome.
func (s *PromSink) RecordDispatchEvent(ev coremetrics.DispatchEvent) error {
	s.events.WithLabelValues(ev.Dispatcher, strconv.FormatBool(ev.Error == "")).Inc()
	return nil
}
