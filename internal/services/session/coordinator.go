package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/services/lobby"
	"github.com/jpickering/rpsls-arena/internal/services/match"
	"github.com/jpickering/rpsls-arena/internal/services/registry"
)

// Transport is the outbound side of the session layer: per-connection
// delivery plus room-based multicast. Room names are lobby ids.
type Transport interface {
	JoinRoom(connID, room string)
	LeaveRoom(connID, room string)
	ToRoom(room string, event model.Event)
	ToConn(connID string, event model.Event)
}

// Config holds coordinator behavior settings
type Config struct {
	// ChoiceTimeout cancels a game whose choices have not both arrived
	// within the window. Zero disables the timeout.
	ChoiceTimeout time.Duration
}

// Coordinator maps inbound transport events onto the registry, lobby
// store and match engine, and emits the resulting broadcasts. It owns
// no game state of its own; its one responsibility beyond routing is
// serializing event processing per lobby id, record-store calls
// included, so that two members' events can never interleave on the
// same aggregates.
type Coordinator struct {
	registry  *registry.Service
	lobbies   *lobby.Store
	engine    *match.Engine
	transport Transport
	locks     *keyedMutex
	cfg       Config
	logger    *slog.Logger
}

// NewCoordinator creates a new session coordinator
func NewCoordinator(
	reg *registry.Service,
	lobbies *lobby.Store,
	engine *match.Engine,
	transport Transport,
	cfg Config,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		registry:  reg,
		lobbies:   lobbies,
		engine:    engine,
		transport: transport,
		locks:     newKeyedMutex(),
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "session")),
	}
}

// HandleMessage dispatches one inbound frame from a connection. A
// handler failure is isolated to its own event and reported only to
// the acting connection, never to a room.
func (c *Coordinator) HandleMessage(ctx context.Context, connID string, env model.Envelope) {
	switch env.Type {
	case model.EventIdentify:
		var p model.IdentifyPayload
		if !c.decode(connID, env.Payload, &p) {
			return
		}
		c.identify(ctx, connID, p.Name)
	case model.EventJoinLobby:
		var p model.LobbyPayload
		if !c.decode(connID, env.Payload, &p) {
			return
		}
		c.joinLobby(ctx, connID, p.LobbyID)
	case model.EventStartGame:
		var p model.LobbyPayload
		if !c.decode(connID, env.Payload, &p) {
			return
		}
		c.startGame(ctx, connID, p.LobbyID)
	case model.EventMakeChoice:
		var p model.ChoicePayload
		if !c.decode(connID, env.Payload, &p) {
			return
		}
		c.makeChoice(ctx, connID, p.LobbyID, p.Choice)
	case model.EventLeaveLobby:
		var p model.LobbyPayload
		if !c.decode(connID, env.Payload, &p) {
			return
		}
		c.leaveLobby(ctx, connID, p.LobbyID)
	default:
		c.logger.Debug("unknown event type",
			slog.String("conn_id", connID),
			slog.String("type", string(env.Type)),
		)
	}
}

// HandleDisconnect cleans up the registry binding and any lobby
// membership for a closed connection.
func (c *Coordinator) HandleDisconnect(ctx context.Context, connID string) {
	player, ok := c.registry.Resolve(connID)
	c.registry.Forget(connID)
	if !ok {
		return
	}

	for _, l := range c.lobbies.List() {
		if !l.IsMember(player.ID) {
			continue
		}
		unlock := c.locks.Lock(l.ID)
		c.removeFromLobby(ctx, connID, player.ID, l.ID)
		unlock()
	}
}

func (c *Coordinator) identify(ctx context.Context, connID, name string) {
	player, err := c.registry.Identify(ctx, connID, name)
	if err != nil {
		c.logger.Warn("identify failed",
			slog.String("conn_id", connID),
			slog.Any("error", err),
		)
		if errors.Is(err, model.ErrInvalidName) {
			c.fail(connID, "name must be 2-20 characters")
		} else {
			c.fail(connID, "failed to join")
		}
		return
	}

	c.transport.ToConn(connID, model.Event{
		Type: model.EventIdentified,
		Payload: model.IdentifiedPayload{
			Player:  player,
			Lobbies: c.lobbies.List(),
		},
	})
}

func (c *Coordinator) joinLobby(ctx context.Context, connID, lobbyID string) {
	player, ok := c.registry.Resolve(connID)
	if !ok {
		return
	}

	unlock := c.locks.Lock(lobbyID)
	defer unlock()

	l, joined, becameReady := c.lobbies.Join(lobbyID, player)
	if !joined {
		return
	}

	c.transport.JoinRoom(connID, lobbyID)
	c.transport.ToConn(connID, model.Event{Type: model.EventLobbyJoined, Payload: l})
	c.transport.ToRoom(lobbyID, model.Event{Type: model.EventLobbyUpdate, Payload: l})
	if becameReady {
		c.transport.ToRoom(lobbyID, model.Event{Type: model.EventLobbyReady, Payload: l})
	}
}

func (c *Coordinator) startGame(ctx context.Context, connID, lobbyID string) {
	if _, ok := c.registry.Resolve(connID); !ok {
		return
	}

	unlock := c.locks.Lock(lobbyID)
	defer unlock()

	game, l, err := c.lobbies.StartGame(ctx, lobbyID)
	if err != nil {
		c.logger.Warn("start game failed",
			slog.String("lobby_id", lobbyID),
			slog.Any("error", err),
		)
		c.fail(connID, "failed to start game")
		return
	}

	c.transport.ToRoom(lobbyID, model.Event{
		Type:    model.EventGameStarted,
		Payload: model.GameStartedPayload{Game: game, Lobby: l},
	})
	c.scheduleChoiceTimeout(lobbyID, game.ID)
}

func (c *Coordinator) makeChoice(ctx context.Context, connID, lobbyID, choice string) {
	player, ok := c.registry.Resolve(connID)
	if !ok {
		return
	}

	mv, err := model.ParseMove(choice)
	if err != nil {
		c.fail(connID, "invalid choice")
		return
	}

	unlock := c.locks.Lock(lobbyID)
	defer unlock()

	l, err := c.lobbies.Get(lobbyID)
	if err != nil || l.GameID == nil {
		c.fail(connID, "no game in progress")
		return
	}

	game, completed, err := c.engine.SubmitChoice(ctx, *l.GameID, player.ID, mv)
	switch {
	case errors.Is(err, model.ErrDuplicateChoice):
		// First submission wins; stay silent so the resubmitter learns
		// nothing about the opponent's timing
		return
	case errors.Is(err, model.ErrNotAParticipant):
		c.fail(connID, "not a participant in this game")
		return
	case err != nil:
		c.logger.Warn("submit choice failed",
			slog.String("lobby_id", lobbyID),
			slog.Any("error", err),
		)
		c.fail(connID, "failed to record choice")
		return
	}

	c.transport.ToRoom(lobbyID, model.Event{
		Type:    model.EventChoiceRecorded,
		Payload: model.ChoiceRecordedPayload{PlayerID: player.ID, Choice: mv},
	})

	if !completed {
		return
	}

	game, winner, err := c.engine.Finalize(ctx, game)
	if err != nil {
		c.logger.Error("finalize failed",
			slog.String("lobby_id", lobbyID),
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err),
		)
		c.fail(connID, "failed to resolve game")
		return
	}

	after, _ := c.lobbies.ClearGame(lobbyID, game.ID)
	c.transport.ToRoom(lobbyID, model.Event{
		Type:    model.EventGameResult,
		Payload: model.GameResultPayload{Game: game, Winner: winner, Lobby: after},
	})
}

func (c *Coordinator) leaveLobby(ctx context.Context, connID, lobbyID string) {
	player, ok := c.registry.Resolve(connID)
	if !ok {
		return
	}

	unlock := c.locks.Lock(lobbyID)
	defer unlock()

	c.removeFromLobby(ctx, connID, player.ID, lobbyID)
}

// removeFromLobby handles both explicit leaves and disconnects. The
// caller holds the lobby lock. A mid-game departure cancels the game
// outright and tells the remaining member the match is void.
func (c *Coordinator) removeFromLobby(ctx context.Context, connID string, playerID model.PlayerID, lobbyID string) {
	l, removed, deleted, inFlight := c.lobbies.Leave(lobbyID, playerID)
	if !removed {
		return
	}

	c.transport.LeaveRoom(connID, lobbyID)

	if inFlight != nil {
		game, err := c.engine.Cancel(ctx, *inFlight)
		if err != nil {
			c.logger.Error("cancel on departure failed",
				slog.String("lobby_id", lobbyID),
				slog.String("game_id", string(*inFlight)),
				slog.Any("error", err),
			)
		} else if !deleted {
			c.transport.ToRoom(lobbyID, model.Event{
				Type:    model.EventGameCancelled,
				Payload: model.GameCancelledPayload{Game: game, Lobby: l},
			})
		}
	}

	if !deleted {
		c.transport.ToRoom(lobbyID, model.Event{Type: model.EventLobbyUpdate, Payload: l})
	}
}

// scheduleChoiceTimeout voids the game if it is still unresolved when
// the window closes. No timer is scheduled when the timeout is zero,
// leaving the "waiting for opponent's choice" state purely passive.
func (c *Coordinator) scheduleChoiceTimeout(lobbyID string, gameID model.GameID) {
	if c.cfg.ChoiceTimeout <= 0 {
		return
	}

	time.AfterFunc(c.cfg.ChoiceTimeout, func() {
		ctx := context.Background()

		unlock := c.locks.Lock(lobbyID)
		defer unlock()

		game, err := c.engine.GetGame(ctx, gameID)
		if err != nil || game.Status != model.GameStatusActive {
			return
		}

		game, err = c.engine.Cancel(ctx, gameID)
		if err != nil {
			c.logger.Error("timeout cancel failed",
				slog.String("game_id", string(gameID)),
				slog.Any("error", err),
			)
			return
		}

		l, _ := c.lobbies.ClearGame(lobbyID, gameID)
		c.logger.Info("game timed out",
			slog.String("lobby_id", lobbyID),
			slog.String("game_id", string(gameID)),
		)
		c.transport.ToRoom(lobbyID, model.Event{
			Type:    model.EventGameCancelled,
			Payload: model.GameCancelledPayload{Game: game, Lobby: l},
		})
	})
}

// decode unmarshals an inbound payload, reporting a malformed frame to
// the sender only
func (c *Coordinator) decode(connID string, raw json.RawMessage, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		c.fail(connID, "malformed payload")
		return false
	}
	return true
}

func (c *Coordinator) fail(connID, message string) {
	c.transport.ToConn(connID, model.Event{
		Type:    model.EventOperationFailed,
		Payload: model.OperationFailedPayload{Message: message},
	})
}
