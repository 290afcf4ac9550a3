package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jpickering/rpsls-arena/internal/api/handler"
	"github.com/jpickering/rpsls-arena/internal/middleware"
	"github.com/jpickering/rpsls-arena/internal/storage"
	"github.com/jpickering/rpsls-arena/internal/transport/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger *slog.Logger
	Store  storage.Store
	Hub    *ws.Hub
}

// NewRouter creates the HTTP router: the websocket endpoint plus the
// read-only JSON query surface.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	queryHandler := handler.NewQueryHandler(cfg.Store, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	r.Use(recoveryMiddleware)

	// The websocket endpoint skips request logging; a held-open
	// connection would log once at close with a misleading duration
	r.HandleFunc("/ws", cfg.Hub.ServeWS)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.HandleFunc("/players", queryHandler.ListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/games", queryHandler.ListGames).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
