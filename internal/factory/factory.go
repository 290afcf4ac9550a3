package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jpickering/rpsls-arena/internal/config"
	"github.com/jpickering/rpsls-arena/internal/dependencies/clock"
	"github.com/jpickering/rpsls-arena/internal/dependencies/random"
	"github.com/jpickering/rpsls-arena/internal/services/lobby"
	"github.com/jpickering/rpsls-arena/internal/services/match"
	"github.com/jpickering/rpsls-arena/internal/services/registry"
	"github.com/jpickering/rpsls-arena/internal/services/session"
	"github.com/jpickering/rpsls-arena/internal/storage"
	"github.com/jpickering/rpsls-arena/internal/storage/memory"
	redisstorage "github.com/jpickering/rpsls-arena/internal/storage/redis"
	"github.com/jpickering/rpsls-arena/internal/transport/ws"
)

// App contains all wired application components
type App struct {
	Store storage.Store

	Clock  clock.Clock
	Random random.Random

	Registry    *registry.Service
	LobbyStore  *lobby.Store
	MatchEngine *match.Engine
	Coordinator *session.Coordinator
	Hub         *ws.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the record store backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ChoiceTimeout cancels unresolved games after the window; zero disables
	ChoiceTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.ChoiceTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, choiceTimeout time.Duration, logger *slog.Logger) *App {
	reg := registry.New(store, clk, rnd, logger)
	engine := match.NewEngine(store, clk, rnd, logger)
	lobbies := lobby.NewStore(engine, clk, logger)

	hub := ws.NewHub(logger)
	coordinator := session.NewCoordinator(reg, lobbies, engine, hub, session.Config{
		ChoiceTimeout: choiceTimeout,
	}, logger)
	hub.SetHandler(coordinator)

	return &App{
		Store:       store,
		Clock:       clk,
		Random:      rnd,
		Registry:    reg,
		LobbyStore:  lobbies,
		MatchEngine: engine,
		Coordinator: coordinator,
		Hub:         hub,
	}
}
