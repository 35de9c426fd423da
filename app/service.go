// Package app wires the configured dispatcher, metrics sinks and activity
// log store into a runnable service.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wenchichenginl/HERON/api"
	"github.com/wenchichenginl/HERON/app/plugins"
	"github.com/wenchichenginl/HERON/config"
	"github.com/wenchichenginl/HERON/core/dispatch"
	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
	"github.com/wenchichenginl/HERON/core/model"
	"github.com/wenchichenginl/HERON/infra/logger"
	inframetrics "github.com/wenchichenginl/HERON/infra/metrics"
)

// Service orchestrates one case: the configured dispatch strategy, the
// metrics sinks and the activity log store.
type Service struct {
	cfg   *config.Config
	disp  dispatch.Dispatcher
	sink  coremetrics.Sink
	store dispatchlog.LogStore
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	d, err := dispatch.New(cfg.Dispatcher)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := plugins.NewLogStore(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("log store: %w", err)
	}
	return &Service{cfg: cfg, disp: d, sink: sink, store: store, log: logg}, nil
}

// Dispatcher exposes the configured strategy, for diagnostics.
func (s *Service) Dispatcher() dispatch.Dispatcher { return s.disp }

// Initialize prepares the dispatcher. For the abce strategy this resolves
// the module location and probes the module, so misconfigurations fail
// before the first period.
func (s *Service) Initialize(ctx context.Context) error {
	return s.disp.Initialize(ctx, s.cfg.Case, s.cfg.Components, s.cfg.Sources)
}

// Run dispatches the given number of consecutive periods and returns their
// states. The Prometheus endpoint, when configured, serves until ctx ends.
func (s *Service) Run(ctx context.Context, periods int) ([]*dispatch.State, error) {
	if periods <= 0 {
		periods = 1
	}
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if addr := s.cfg.API.Addr; addr != "" {
		go func() {
			if err := api.StartServer(ctx, addr, s.cfg.API.Token, s.store); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	states := make([]*dispatch.State, 0, periods)
	for p := 0; p < periods; p++ {
		st, err := s.dispatchPeriod(ctx, p)
		if err != nil {
			return states, fmt.Errorf("period %d: %w", p, err)
		}
		states = append(states, st)
	}
	return states, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.store.Close() }

func (s *Service) dispatchPeriod(ctx context.Context, period int) (*dispatch.State, error) {
	meta := &dispatch.Meta{
		ID:         uuid.NewString(),
		Case:       s.cfg.Case,
		Period:     period,
		Components: s.cfg.Components,
		Sources:    s.cfg.Sources,
		Indexer:    model.NewResourceIndexer(s.cfg.Components),
	}

	start := time.Now()
	st, err := s.disp.Dispatch(ctx, meta)
	dur := time.Since(start)

	ev := coremetrics.DispatchEvent{
		DispatchID: meta.ID,
		Case:       s.cfg.Case.Name,
		Period:     period,
		Dispatcher: s.disp.Name(),
		Duration:   dur,
		Time:       time.Now(),
	}
	rec := dispatchlog.LogRecord{
		Timestamp:  time.Now(),
		DispatchID: meta.ID,
		Case:       s.cfg.Case.Name,
		Period:     period,
		Dispatcher: s.disp.Name(),
		DurationMS: dur.Seconds() * 1000,
	}
	if mp, ok := s.disp.(interface{ ModulePath() string }); ok {
		ev.Module = mp.ModulePath()
		rec.Module = mp.ModulePath()
	}

	if err != nil {
		ev.Error = err.Error()
		rec.Error = err.Error()
		s.recordEvent(ev)
		s.appendLog(ctx, rec)
		return nil, err
	}

	unfilled := st.Unfilled(meta.Indexer)
	ev.Unfilled = len(unfilled)
	rec.Unfilled = unfilled
	rec.Totals = resourceTotals(st)

	if err := s.sink.RecordActivity(summarize(st, s.cfg.Case.Name, period, s.disp.Name())); err != nil {
		s.log.Errorf("record activity: %v", err)
	}
	s.recordEvent(ev)
	s.appendLog(ctx, rec)
	s.log.Infof("period %d dispatched: %d series, %d unfilled", period, st.NumSeries(), len(unfilled))
	return st, nil
}

func (s *Service) recordEvent(ev coremetrics.DispatchEvent) {
	if rec, ok := s.sink.(coremetrics.DispatchEventRecorder); ok {
		if err := rec.RecordDispatchEvent(ev); err != nil {
			s.log.Errorf("record dispatch event: %v", err)
		}
	}
}

func (s *Service) appendLog(ctx context.Context, rec dispatchlog.LogRecord) {
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Errorf("append activity log: %v", err)
	}
}

// summarize aggregates the state per resource across components.
func summarize(st *dispatch.State, caseName string, period int, dispatcher string) []coremetrics.ActivityRecord {
	byResource := map[string][]float64{}
	for _, series := range st.Activity {
		for r, values := range series {
			byResource[r] = append(byResource[r], values...)
		}
	}
	resources := make([]string, 0, len(byResource))
	for r := range byResource {
		resources = append(resources, r)
	}
	sort.Strings(resources)

	now := time.Now()
	records := make([]coremetrics.ActivityRecord, 0, len(resources))
	for _, r := range resources {
		values := byResource[r]
		records = append(records, coremetrics.ActivityRecord{
			Case:       caseName,
			Period:     period,
			Dispatcher: dispatcher,
			Resource:   r,
			Total:      floats.Sum(values),
			Mean:       stat.Mean(values, nil),
			Peak:       floats.Max(values),
			Time:       now,
		})
	}
	return records
}

func resourceTotals(st *dispatch.State) map[string]float64 {
	totals := map[string]float64{}
	for _, series := range st.Activity {
		for r, values := range series {
			totals[r] += floats.Sum(values)
		}
	}
	return totals
}
