package handlers

import (
	"net/http"

	"github.com/wonpil/sentrev/internal/scheduler"
	"github.com/wonpil/sentrev/pkg/database"
	"github.com/wonpil/sentrev/pkg/logger"
)

// SystemHandler serves health and scheduler status endpoints
// ⭐ SSOT: 시스템 상태 API는 여기서만
type SystemHandler struct {
	db        *database.DB
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

// NewSystemHandler creates a new system handler.
// scheduler may be nil when running in API-only mode.
func NewSystemHandler(db *database.DB, sched *scheduler.Scheduler, log *logger.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		scheduler: sched,
		logger:    log,
	}
}

// GetHealth returns database health status
// GET /api/v1/system/health
func (h *SystemHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.db.HealthCheck(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Health check failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"healthy": false,
			"error":   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// GetSchedulerStats returns job statistics
// GET /api/v1/system/scheduler
func (h *SystemHandler) GetSchedulerStats(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		respondError(w, http.StatusNotFound, "Scheduler not running")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  h.scheduler.GetAllJobs(),
		"stats": h.scheduler.GetJobStats(),
	})
}
