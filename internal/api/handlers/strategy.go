package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/logger"
)

// StrategyHandler serves strategy pipeline snapshots
// ⭐ SSOT: 전략 조회 API 핸들러는 여기서만
type StrategyHandler struct {
	universeRepo contracts.UniverseRepository
	scoreRepo    contracts.ScoreRepository
	requestRepo  contracts.RequestRepository
	snapshot     *strategyconfig.DecisionSnapshot
	logger       *logger.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(
	universeRepo contracts.UniverseRepository,
	scoreRepo contracts.ScoreRepository,
	requestRepo contracts.RequestRepository,
	snapshot *strategyconfig.DecisionSnapshot,
	log *logger.Logger,
) *StrategyHandler {
	return &StrategyHandler{
		universeRepo: universeRepo,
		scoreRepo:    scoreRepo,
		requestRepo:  requestRepo,
		snapshot:     snapshot,
		logger:       log,
	}
}

// ScoreItem represents one scored symbol in a response
type ScoreItem struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
	Alpha  float64 `json:"alpha"`
}

// GetLatestScores returns the most recent staged scores
// GET /api/v1/strategy/scores/latest
func (h *StrategyHandler) GetLatestScores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scoreSet, err := h.scoreRepo.GetLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest scores")
		respondError(w, http.StatusInternalServerError, "Failed to get latest scores")
		return
	}
	if scoreSet == nil {
		respondError(w, http.StatusNotFound, "No staged scores")
		return
	}

	items := make([]ScoreItem, 0, scoreSet.Count())
	alphas := scoreSet.Alphas()
	for _, symbol := range scoreSet.Symbols() {
		items = append(items, ScoreItem{
			Symbol: symbol,
			Score:  scoreSet.Scores[symbol],
			Alpha:  alphas[symbol],
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     scoreSet.Date.Format("2006-01-02"),
		"count":    scoreSet.Count(),
		"scores":   items,
		"filtered": scoreSet.Filtered,
	})
}

// GetScoresByDate returns staged scores for a specific date
// GET /api/v1/strategy/scores/{date}
func (h *StrategyHandler) GetScoresByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dateStr := mux.Vars(r)["date"]
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (want YYYY-MM-DD)")
		return
	}

	scoreSet, err := h.scoreRepo.GetByDate(ctx, date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get scores by date")
		respondError(w, http.StatusInternalServerError, "Failed to get scores")
		return
	}
	if scoreSet == nil || scoreSet.Count() == 0 {
		respondError(w, http.StatusNotFound, "No scores for date")
		return
	}

	respondJSON(w, http.StatusOK, scoreSet)
}

// GetLatestUniverse returns the most recent universe snapshot
// GET /api/v1/strategy/universe/latest
func (h *StrategyHandler) GetLatestUniverse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	universe, err := h.universeRepo.GetLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest universe")
		respondError(w, http.StatusInternalServerError, "Failed to get latest universe")
		return
	}
	if universe == nil {
		respondError(w, http.StatusNotFound, "No universe snapshot")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":           universe.Date.Format("2006-01-02"),
		"total_count":    universe.TotalCount,
		"included_count": universe.Count(),
		"excluded_count": len(universe.Excluded),
		"symbols":        universe.Symbols,
		"excluded":       universe.Excluded,
	})
}

// GetLatestRequest returns the most recently submitted optimization request
// GET /api/v1/strategy/requests/latest
func (h *StrategyHandler) GetLatestRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := h.requestRepo.GetLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest request")
		respondError(w, http.StatusInternalServerError, "Failed to get latest request")
		return
	}
	if request == nil {
		respondError(w, http.StatusNotFound, "No submitted requests")
		return
	}

	respondJSON(w, http.StatusOK, request)
}

// GetConfig returns the active strategy config snapshot
// GET /api/v1/strategy/config
func (h *StrategyHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
