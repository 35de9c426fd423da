package dispatch

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	dispatchDuration.WithLabelValues("abce").Observe(0.1)
	dispatchSuccess.WithLabelValues("abce").Inc()
	dispatchFailure.WithLabelValues("abce").Inc()
	unfilledSeries.WithLabelValues("abce").Set(2)
	moduleLoads.Inc()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"dispatch_duration_seconds",
		"dispatch_success_total",
		"dispatch_failure_total",
		"dispatch_unfilled_series",
		"external_module_loads_total",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestObserveDispatch(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })

	ObserveDispatch("abce", 0.05, nil)
	ObserveDispatch("abce", 0.05, errors.New("boom"))
	ObserveUnfilled("abce", 3)
	CountModuleLoad()

	if v := testutil.ToFloat64(dispatchSuccess.WithLabelValues("abce")); v != 1 {
		t.Errorf("dispatch_success_total = %v, want 1", v)
	}
	if v := testutil.ToFloat64(dispatchFailure.WithLabelValues("abce")); v != 1 {
		t.Errorf("dispatch_failure_total = %v, want 1", v)
	}
	if v := testutil.ToFloat64(unfilledSeries.WithLabelValues("abce")); v != 3 {
		t.Errorf("dispatch_unfilled_series = %v, want 3", v)
	}
	if v := testutil.ToFloat64(moduleLoads); v != 1 {
		t.Errorf("external_module_loads_total = %v, want 1", v)
	}
	if c := testutil.CollectAndCount(dispatchDuration); c == 0 {
		t.Error("expected duration samples")
	}
}
