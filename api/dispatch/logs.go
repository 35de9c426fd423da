// Package dispatch exposes the dispatch activity log over HTTP.
package dispatch

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wenchichenginl/HERON/core/dispatch/logging"
)

// NewLogHandler returns the GET /api/dispatch/logs handler. When token is
// non-empty, requests must carry it as a bearer token. Filters come from the
// query string: start and end (RFC3339), case and dispatcher.
func NewLogHandler(store logging.LogStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		records, err := store.Query(r.Context(), logQuery(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// logQuery builds the store query from the URL. Unparseable times count as
// absent instead of failing the request.
func logQuery(r *http.Request) logging.LogQuery {
	params := r.URL.Query()
	q := logging.LogQuery{
		Case:       params.Get("case"),
		Dispatcher: params.Get("dispatcher"),
	}
	if s := params.Get("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.Start = t
		}
	}
	if s := params.Get("end"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.End = t
		}
	}
	return q
}
