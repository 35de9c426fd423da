package metrics_test

import (
	"strings"
	"testing"

	"github.com/wenchichenginl/HERON/core/factory"
	metrics "github.com/wenchichenginl/HERON/core/metrics"
	_ "github.com/wenchichenginl/HERON/infra/metrics"
)

func TestNewSink(t *testing.T) {
	t.Run("nop builtin", func(t *testing.T) {
		s, err := metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
		if err != nil {
			t.Fatalf("create nop: %v", err)
		}
		if s == nil {
			t.Fatal("expected sink instance")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := metrics.NewSink([]factory.ModuleConfig{{Type: "statsd"}})
		if err == nil {
			t.Fatal("expected error for unknown type")
		}
		if !strings.Contains(err.Error(), "statsd") {
			t.Fatalf("error %q does not name the type", err)
		}
	})

	t.Run("no config defaults to nop", func(t *testing.T) {
		s, err := metrics.NewSink(nil)
		if err != nil {
			t.Fatalf("create default: %v", err)
		}
		if _, ok := s.(metrics.NopSink); !ok {
			t.Fatalf("expected NopSink, got %T", s)
		}
	})

	t.Run("multiple configs fan out", func(t *testing.T) {
		s, err := metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
		if err != nil {
			t.Fatalf("create multi: %v", err)
		}
		m, ok := s.(*metrics.MultiSink)
		if !ok {
			t.Fatalf("expected MultiSink, got %T", s)
		}
		if len(m.Sinks) != 2 {
			t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
		}
	})
}
