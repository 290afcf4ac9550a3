package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jpickering/rpsls-arena/internal/dependencies/clock"
	"github.com/jpickering/rpsls-arena/internal/dependencies/random"
	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/storage"
)

const (
	// PlayerIDLength is the length of generated player ids
	PlayerIDLength = 12
	// PlayerIDAlphabet is the characters used in player ids
	PlayerIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Service maps live connection ids to player identities. Bindings are
// transient: they exist for the lifetime of a connection and are never
// persisted.
type Service struct {
	mu    sync.RWMutex
	conns map[string]model.Player

	store  storage.Store
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// New creates a new registry service
func New(store storage.Store, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		conns:  make(map[string]model.Player),
		store:  store,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// Identify looks up the player by name in the record store, creating it
// with a zero score if absent, and binds the connection to it. A second
// identify on the same connection replaces the binding.
func (s *Service) Identify(ctx context.Context, connID, name string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < model.MinNameLength || n > model.MaxNameLength {
		return model.Player{}, model.ErrInvalidName
	}

	player, err := s.store.FindPlayerByName(ctx, name)
	switch {
	case err == nil:
		// Existing player; score and identity persist across connections
	case errors.Is(err, model.ErrPlayerNotFound):
		player = &model.Player{
			ID:        model.PlayerID(s.random.String(PlayerIDLength, PlayerIDAlphabet)),
			Name:      name,
			Score:     0,
			CreatedAt: s.clock.Now(),
		}
		if createErr := s.store.CreatePlayer(ctx, player); createErr != nil {
			if errors.Is(createErr, model.ErrPlayerExists) {
				// Lost a create race; the stored record wins
				player, createErr = s.store.FindPlayerByName(ctx, name)
				if createErr != nil {
					return model.Player{}, fmt.Errorf("%w: %w", model.ErrLookupFailure, createErr)
				}
			} else {
				return model.Player{}, fmt.Errorf("%w: %w", model.ErrLookupFailure, createErr)
			}
		} else {
			s.logger.Info("player created",
				slog.String("player_id", string(player.ID)),
				slog.String("name", name),
			)
		}
	default:
		return model.Player{}, fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
	}

	s.mu.Lock()
	s.conns[connID] = *player
	s.mu.Unlock()

	return *player, nil
}

// Resolve returns the player bound to the connection, if any. Callers
// must ignore lobby and game events from unidentified connections.
func (s *Service) Resolve(connID string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.conns[connID]
	return player, ok
}

// Forget removes the connection binding (called on disconnect)
func (s *Service) Forget(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, connID)
}
