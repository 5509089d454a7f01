// Package http wires the chi router for the FlatFlow API.
package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/http/household"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/http/insights"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/metrics"
)

func New(householdV1 *household.Handler, insightsV1 *insights.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(countRequests)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1/flats/{flatID}", func(r chi.Router) {
		householdV1.Routes(r)
		insightsV1.Routes(r)
	})

	return router
}

// countRequests records one prometheus sample per handled request, keyed
// by the matched chi route pattern rather than the raw path.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
