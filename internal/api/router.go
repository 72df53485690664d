package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/minglun/v32/backend/internal/api/handlers"
	"github.com/minglun/v32/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	marketHandler *handlers.MarketHandler,
	scanHandler *handlers.ScanHandler,
	holdingsHandler *handlers.HoldingsHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Market regime
	api.HandleFunc("/market/regime", marketHandler.GetRegime).Methods("GET")

	// Pool scans
	api.HandleFunc("/scan/{pool}", scanHandler.ScanPool).Methods("GET")

	// Holdings
	api.HandleFunc("/holdings", holdingsHandler.List).Methods("GET")
	api.HandleFunc("/holdings", holdingsHandler.Add).Methods("POST")
	api.HandleFunc("/holdings/report", holdingsHandler.Report).Methods("GET")
	api.HandleFunc("/holdings/{id:[0-9]+}", holdingsHandler.Delete).Methods("DELETE")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "v32-warroom-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
