package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	dispatchDuration *prometheus.HistogramVec
	dispatchSuccess  *prometheus.CounterVec
	dispatchFailure  *prometheus.CounterVec
	unfilledSeries   *prometheus.GaugeVec
	moduleLoads      prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.GaugeVec, prometheus.Counter) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Duration of dispatch calls, per strategy",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dispatcher"},
	)
	suc := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_success_total",
			Help: "Number of dispatch calls that returned a state",
		},
		[]string{"dispatcher"},
	)
	fail := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_failure_total",
			Help: "Number of dispatch calls that returned an error",
		},
		[]string{"dispatcher"},
	)
	unf := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dispatch_unfilled_series",
			Help: "Series left missing or all-zero by the last dispatch call",
		},
		[]string{"dispatcher"},
	)
	loads := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "external_module_loads_total",
			Help: "Number of times the external dispatch module was loaded",
		},
	)
	return dur, suc, fail, unf, loads
}

func init() {
	dispatchDuration, dispatchSuccess, dispatchFailure, unfilledSeries, moduleLoads = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(dispatchDuration, dispatchSuccess, dispatchFailure, unfilledSeries, moduleLoads)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	dispatchDuration, dispatchSuccess, dispatchFailure, unfilledSeries, moduleLoads = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

// ObserveDispatch records the outcome of one dispatch call.
func ObserveDispatch(dispatcher string, seconds float64, err error) {
	dispatchDuration.WithLabelValues(dispatcher).Observe(seconds)
	if err != nil {
		dispatchFailure.WithLabelValues(dispatcher).Inc()
		return
	}
	dispatchSuccess.WithLabelValues(dispatcher).Inc()
}

// ObserveUnfilled records how many series the last call left unfilled.
func ObserveUnfilled(dispatcher string, n int) {
	unfilledSeries.WithLabelValues(dispatcher).Set(float64(n))
}

// CountModuleLoad records one load of the external dispatch module.
func CountModuleLoad() {
	moduleLoads.Inc()
}
