package middleware

import (
	"net/http"
	"time"

	"postsapi/app/observability"

	"github.com/gorilla/mux"
)

// Metrics records request count and latency per route template. Installed
// with Router.Use it sees the matched route; requests that matched no route
// are labelled "unmatched".
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		observability.ObserveRequest(r.Method, route, rec.Status(), time.Since(start))
	})
}
