package handler

import (
	"log/slog"
	"net/http"

	"github.com/jpickering/rpsls-arena/internal/api/response"
	"github.com/jpickering/rpsls-arena/internal/storage"
)

// QueryHandler serves the read-only query surface: the leaderboard and
// the game history. Both are plain record-store reads; the engine is
// not involved.
type QueryHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(store storage.Store, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		store:  store,
		logger: logger.With(slog.String("component", "api")),
	}
}

// ListPlayers handles GET /api/v1/players - players by descending score
func (h *QueryHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayersByScoreDesc(r.Context())
	if err != nil {
		h.logger.Error("failed to list players", slog.Any("error", err))
		response.Error(w, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to fetch players")
		return
	}
	response.JSON(w, http.StatusOK, players)
}

// ListGames handles GET /api/v1/games - games by descending creation time
func (h *QueryHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.store.ListGames(r.Context())
	if err != nil {
		h.logger.Error("failed to list games", slog.Any("error", err))
		response.Error(w, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to fetch games")
		return
	}
	response.JSON(w, http.StatusOK, games)
}
