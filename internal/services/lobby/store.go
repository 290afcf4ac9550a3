package lobby

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/jpickering/rpsls-arena/internal/dependencies/clock"
	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/services/match"
)

// Store owns the in-memory lobby aggregates and their lifecycle.
// The internal mutex only guards map and membership access; callers
// (the session coordinator) additionally serialize all operations per
// lobby id, so a check made by one method still holds when the next
// method on the same lobby runs.
type Store struct {
	mu      sync.RWMutex
	lobbies map[string]*model.Lobby

	engine *match.Engine
	clock  clock.Clock
	logger *slog.Logger
}

// NewStore creates a new lobby store
func NewStore(engine *match.Engine, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		lobbies: make(map[string]*model.Lobby),
		engine:  engine,
		clock:   clk,
		logger:  logger.With(slog.String("component", "lobby")),
	}
}

// GetOrCreate returns the lobby with the given id, creating an empty
// waiting lobby if it does not exist.
func (s *Store) GetOrCreate(id string) *model.Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(id).Clone()
}

func (s *Store) getOrCreateLocked(id string) *model.Lobby {
	if l, ok := s.lobbies[id]; ok {
		return l
	}
	l := &model.Lobby{
		ID:        id,
		Players:   []model.Player{},
		Status:    model.LobbyStatusWaiting,
		CreatedAt: s.clock.Now(),
	}
	s.lobbies[id] = l
	s.logger.Info("lobby created", slog.String("lobby_id", id))
	return l
}

// Get returns the lobby with the given id
func (s *Store) Get(id string) (*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lobbies[id]
	if !ok {
		return nil, model.ErrLobbyNotFound
	}
	return l.Clone(), nil
}

// List returns all lobbies ordered by id
func (s *Store) List() []*model.Lobby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobbies := make([]*model.Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		lobbies = append(lobbies, l.Clone())
	}
	sort.Slice(lobbies, func(i, j int) bool { return lobbies[i].ID < lobbies[j].ID })
	return lobbies
}

// Join adds the player to the lobby, creating the lobby if needed.
// Joining a lobby the player is already in, or a full lobby, is a
// no-op returning the lobby unchanged. When membership reaches
// capacity the status becomes ready.
func (s *Store) Join(id string, player model.Player) (lobby *model.Lobby, joined, becameReady bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.getOrCreateLocked(id)
	if l.IsMember(player.ID) || l.IsFull() {
		return l.Clone(), false, false
	}

	l.Players = append(l.Players, player)
	if l.IsFull() && l.GameID == nil {
		l.Status = model.LobbyStatusReady
		becameReady = true
	}

	s.logger.Info("player joined lobby",
		slog.String("lobby_id", id),
		slog.String("player_id", string(player.ID)),
		slog.Int("members", len(l.Players)),
	)
	return l.Clone(), true, becameReady
}

// Leave removes the player from the lobby. An empty lobby is deleted
// from the store; otherwise the lobby resets to waiting and any
// in-flight game reference is cleared and returned so the caller can
// cancel the game.
func (s *Store) Leave(id string, playerID model.PlayerID) (lobby *model.Lobby, removed, deleted bool, inFlight *model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[id]
	if !ok || !l.IsMember(playerID) {
		return nil, false, false, nil
	}

	for i, p := range l.Players {
		if p.ID == playerID {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			break
		}
	}

	inFlight = l.GameID
	l.GameID = nil

	if len(l.Players) == 0 {
		delete(s.lobbies, id)
		s.logger.Info("lobby deleted", slog.String("lobby_id", id))
		return nil, true, true, inFlight
	}

	l.Status = model.LobbyStatusWaiting
	s.logger.Info("player left lobby",
		slog.String("lobby_id", id),
		slog.String("player_id", string(playerID)),
		slog.Int("members", len(l.Players)),
	)
	return l.Clone(), true, false, inFlight
}

// StartGame transitions a full lobby to playing. It fails with
// ErrInvalidState unless the lobby has exactly two members and no
// active game; a lobby reset to waiting after a finished game can be
// started again for a rematch. The game is created and persisted
// through the match engine before the lobby state changes; a store
// failure leaves the lobby untouched.
func (s *Store) StartGame(ctx context.Context, id string) (*model.Game, *model.Lobby, error) {
	s.mu.Lock()
	l, ok := s.lobbies[id]
	if !ok {
		s.mu.Unlock()
		return nil, nil, model.ErrLobbyNotFound
	}
	if len(l.Players) != model.LobbyCapacity || l.GameID != nil {
		s.mu.Unlock()
		return nil, nil, model.ErrInvalidState
	}
	players := [2]model.PlayerID{l.Players[0].ID, l.Players[1].ID}
	s.mu.Unlock()

	// Store IO happens outside the map lock so a stalled call cannot
	// block other lobbies; the caller's per-lobby serialization keeps
	// this lobby's state fixed in the meantime.
	game, err := s.engine.CreateGame(ctx, id, players)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	l.Status = model.LobbyStatusPlaying
	l.GameID = &game.ID
	lobby := l.Clone()
	s.mu.Unlock()

	s.logger.Info("game started",
		slog.String("lobby_id", id),
		slog.String("game_id", string(game.ID)),
	)
	return game, lobby, nil
}

// ClearGame resets a lobby holding the given game back to waiting with
// no game reference. It reports false if the lobby no longer exists or
// references a different game.
func (s *Store) ClearGame(id string, gameID model.GameID) (*model.Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[id]
	if !ok || l.GameID == nil || *l.GameID != gameID {
		return nil, false
	}

	l.GameID = nil
	l.Status = model.LobbyStatusWaiting
	return l.Clone(), true
}
