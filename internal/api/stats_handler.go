package api

import (
	"log/slog"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// StatsHandler handles user statistics HTTP requests.
type StatsHandler struct {
	statsStore store.StatsStore
	logger     *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsStore store.StatsStore, logger *slog.Logger) *StatsHandler {
	if statsStore == nil {
		panic("statsStore cannot be nil for StatsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsHandler{
		statsStore: statsStore,
		logger:     logger.With(slog.String("component", "stats_handler")),
	}
}

// GetUserStats handles GET /stats requests.
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	stats, err := h.statsStore.GetUserStats(r.Context(), username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load statistics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
