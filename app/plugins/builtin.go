// Package plugins registers the builtin dispatch strategies and activity log
// stores. Importing it for side effects makes the "abce" and "flat"
// dispatchers and the "jsonl", "rotating", "sqlite" and "none" stores
// available to the config-driven factories.
package plugins

import (
	"time"

	"github.com/wenchichenginl/HERON/config"
	"github.com/wenchichenginl/HERON/core/abce"
	"github.com/wenchichenginl/HERON/core/dispatch"
	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
	"github.com/wenchichenginl/HERON/core/factory"
	infraextmod "github.com/wenchichenginl/HERON/infra/extmod"
	"github.com/wenchichenginl/HERON/infra/logger"
)

func init() {
	_ = dispatch.Register("abce", func(conf map[string]any) (dispatch.Dispatcher, error) {
		var s abce.Settings
		if err := factory.Decode(conf, &s); err != nil {
			return nil, err
		}
		var rc struct {
			TimeoutSeconds int `json:"timeout_seconds"`
		}
		if err := factory.Decode(conf, &rc); err != nil {
			return nil, err
		}
		runner := infraextmod.NewExecRunner(time.Duration(rc.TimeoutSeconds)*time.Second, logger.New("extmod"))
		return abce.New(s, runner, nil, logger.New("abce"))
	})

	_ = dispatch.Register("flat", func(conf map[string]any) (dispatch.Dispatcher, error) {
		var c dispatch.FlatConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return dispatch.NewFlatDispatcher(c, logger.New("flat")), nil
	})

	RegisterLogStore("jsonl", func(cfg config.LoggingConfig) (dispatchlog.LogStore, error) {
		return dispatchlog.NewJSONLStore(cfg.Path)
	})
	RegisterLogStore("rotating", func(cfg config.LoggingConfig) (dispatchlog.LogStore, error) {
		return dispatchlog.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	})
	RegisterLogStore("sqlite", func(cfg config.LoggingConfig) (dispatchlog.LogStore, error) {
		return dispatchlog.NewSQLiteStore(cfg.Path)
	})
	RegisterLogStore("none", func(config.LoggingConfig) (dispatchlog.LogStore, error) {
		return dispatchlog.NopStore{}, nil
	})
}
