package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
)

func TestInfluxSink_RecordActivity(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	rec := coremetrics.ActivityRecord{
		Case:       "demo",
		Period:     2,
		Dispatcher: "abce",
		Resource:   "electricity",
		Total:      12.5,
		Mean:       2.5,
		Peak:       5,
		Time:       now,
	}

	if err := sink.RecordActivity([]coremetrics.ActivityRecord{rec}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("resource_activity").
		AddTag("case", "demo").
		AddTag("dispatcher", "abce").
		AddTag("resource", "electricity").
		AddTag("period", "2").
		AddField("total", 12.5).
		AddField("mean", 2.5).
		AddField("peak", 5.0).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordDispatchEvent(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(b)))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.DispatchEvent{
		DispatchID: "d1",
		Case:       "demo",
		Period:     3,
		Dispatcher: "abce",
		Module:     "dispatch.py",
		Duration:   150 * time.Millisecond,
		Unfilled:   1,
		Time:       now,
	}
	if err := sink.RecordDispatchEvent(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	p := write.NewPointWithMeasurement("dispatch_event").
		AddTag("case", "demo").
		AddTag("dispatcher", "abce").
		AddTag("dispatch_id", "d1").
		AddTag("ok", "true").
		AddField("period", 3).
		AddField("duration_ms", 150.0).
		AddField("unfilled", 1).
		AddTag("module", "dispatch.py").
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(bodies) != 1 || bodies[0] != exp {
		t.Errorf("bodies: %#v, want %q", bodies, exp)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
