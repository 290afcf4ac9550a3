package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpickering/rpsls-arena/internal/dependencies/clock"
	"github.com/jpickering/rpsls-arena/internal/dependencies/random"
	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/storage"
)

const (
	// WinnerAward is the Glory Points bonus for a non-tie win
	WinnerAward = 10

	// GameIDLength is the length of generated game ids
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game ids
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Engine owns the Game aggregate: choice collection, completion
// detection, winner resolution and the score award. Callers serialize
// access per lobby id; the engine itself holds no locks.
type Engine struct {
	store  storage.Store
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewEngine creates a new match engine
func NewEngine(store storage.Store, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("component", "match")),
	}
}

// CreateGame builds and persists an active game for the two lobby
// members captured at start time.
func (e *Engine) CreateGame(ctx context.Context, lobbyID string, players [2]model.PlayerID) (*model.Game, error) {
	game := &model.Game{
		ID:        model.GameID(e.random.String(GameIDLength, GameIDAlphabet)),
		LobbyID:   lobbyID,
		Status:    model.GameStatusActive,
		Players:   players,
		CreatedAt: e.clock.Now(),
	}

	if err := e.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
	}

	e.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("lobby_id", lobbyID),
	)
	return game, nil
}

// GetGame retrieves a game by id
func (e *Engine) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return e.store.GetGame(ctx, id)
}

// SubmitChoice records a participant's move. The first submission per
// player wins; a resubmission returns ErrDuplicateChoice and leaves the
// stored choice untouched. The returned bool reports whether the game
// is now complete (both slots filled).
func (e *Engine) SubmitChoice(ctx context.Context, gameID model.GameID, playerID model.PlayerID, mv model.Move) (*model.Game, bool, error) {
	game, err := e.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, false, err
	}

	if game.Status != model.GameStatusActive {
		return game, false, model.ErrInvalidState
	}

	slot := game.Slot(playerID)
	if slot < 0 {
		return game, false, model.ErrNotAParticipant
	}
	if game.Choices[slot] != nil {
		return game, false, model.ErrDuplicateChoice
	}

	game.Choices[slot] = &mv
	if err := e.store.SaveGame(ctx, game); err != nil {
		return nil, false, fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
	}

	return game, game.BothChosen(), nil
}

// Finalize resolves a complete game: it applies the choice relation in
// ascending player-id order, marks the game completed, awards the
// winner and persists the result. The returned winner id is empty on a
// tie.
func (e *Engine) Finalize(ctx context.Context, game *model.Game) (*model.Game, model.PlayerID, error) {
	if game.Status != model.GameStatusActive || !game.BothChosen() {
		return game, "", model.ErrInvalidState
	}

	// Fixed resolution order so the result cannot depend on submission order
	first, second := 0, 1
	if game.Players[second] < game.Players[first] {
		first, second = second, first
	}

	var winner model.PlayerID
	switch model.Resolve(*game.Choices[first], *game.Choices[second]) {
	case model.OutcomeA:
		winner = game.Players[first]
	case model.OutcomeB:
		winner = game.Players[second]
	case model.OutcomeTie:
		winner = ""
	}

	game.Winner = winner
	game.Status = model.GameStatusCompleted
	game.CompletedAt = e.clock.Now()

	if winner != "" {
		total, err := e.store.IncrementScore(ctx, winner, WinnerAward)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
		}
		e.logger.Info("glory points awarded",
			slog.String("game_id", string(game.ID)),
			slog.String("player_id", string(winner)),
			slog.Int("award", WinnerAward),
			slog.Int("total", total),
		)
	}

	if err := e.store.SaveGame(ctx, game); err != nil {
		return nil, "", fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
	}

	return game, winner, nil
}

// Cancel voids an active game, e.g. when a participant leaves
// mid-game. Cancelling a finished game is a no-op.
func (e *Engine) Cancel(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := e.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.Status != model.GameStatusActive {
		return game, nil
	}

	game.Status = model.GameStatusCancelled
	game.CompletedAt = e.clock.Now()

	if err := e.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLookupFailure, err)
	}

	e.logger.Info("game cancelled",
		slog.String("game_id", string(gameID)),
		slog.String("lobby_id", game.LobbyID),
	)
	return game, nil
}
