package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gushi-cookie/chan-parser/internal/setup"
	mw "github.com/gushi-cookie/chan-parser/shared/middleware"
	"github.com/gushi-cookie/chan-parser/shared/middleware/metrics"
)

// New creates and configures a new mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for the catalog frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	))

	// JSON API only: strict policy, no scripts/styles needed
	r.Use(mw.SecurityHeadersWithCSP("default-src 'none'; frame-ancestors 'none'"))

	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog-threads", h.GetCatalogThreads).Methods("GET")
	api.HandleFunc("/catalog-threads/{id}", h.GetCatalogThread).Methods("GET")
	api.HandleFunc("/boards", h.GetBoards).Methods("GET")
	api.HandleFunc("/threads/{id}", h.DeleteThread).Methods("DELETE")

	return r
}
