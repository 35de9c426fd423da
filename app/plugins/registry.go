package plugins

import (
	"fmt"
	"sort"

	"github.com/wenchichenginl/HERON/config"
	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
)

// LogStoreFactory builds a dispatch activity log store from its config.
type LogStoreFactory func(cfg config.LoggingConfig) (dispatchlog.LogStore, error)

// LogStores holds the registered activity log store factories by backend name.
var LogStores = map[string]LogStoreFactory{}

// RegisterLogStore adds a log store factory identified by name.
func RegisterLogStore(name string, f LogStoreFactory) { LogStores[name] = f }

// NewLogStore builds the store selected by cfg.Backend.
func NewLogStore(cfg config.LoggingConfig) (dispatchlog.LogStore, error) {
	f, ok := LogStores[cfg.Backend]
	if !ok {
		known := make([]string, 0, len(LogStores))
		for name := range LogStores {
			known = append(known, name)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown log store backend %q (known: %v)", cfg.Backend, known)
	}
	return f(cfg)
}
