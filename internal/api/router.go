package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonpil/sentrev/internal/api/handlers"
	"github.com/wonpil/sentrev/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(strategyHandler *handlers.StrategyHandler, systemHandler *handlers.SystemHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Strategy endpoints
	api.HandleFunc("/strategy/scores/latest", strategyHandler.GetLatestScores).Methods("GET")
	api.HandleFunc("/strategy/scores/{date}", strategyHandler.GetScoresByDate).Methods("GET")
	api.HandleFunc("/strategy/universe/latest", strategyHandler.GetLatestUniverse).Methods("GET")
	api.HandleFunc("/strategy/requests/latest", strategyHandler.GetLatestRequest).Methods("GET")
	api.HandleFunc("/strategy/config", strategyHandler.GetConfig).Methods("GET")

	// System endpoints
	api.HandleFunc("/system/health", systemHandler.GetHealth).Methods("GET")
	api.HandleFunc("/system/scheduler", systemHandler.GetSchedulerStats).Methods("GET")

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
		"service": "sentrev-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
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
