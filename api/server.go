// Package api serves the HTTP query surface of the dispatch runner.
package api

import (
	"context"
	"net/http"
	"time"

	apidispatch "github.com/wenchichenginl/HERON/api/dispatch"
	"github.com/wenchichenginl/HERON/core/dispatch/logging"
	"github.com/wenchichenginl/HERON/infra/logger"
)

// StartServer serves the dispatch log API on the given address until the
// provided context is canceled. An empty token leaves the endpoint open.
func StartServer(ctx context.Context, addr, token string, store logging.LogStore) error {
	mux := http.NewServeMux()
	mux.Handle("/api/dispatch/logs", apidispatch.NewLogHandler(store, token))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.New("api").Errorf("api server shutdown: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
