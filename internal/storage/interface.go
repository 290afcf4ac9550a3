package storage

import (
	"context"

	"github.com/jpickering/rpsls-arena/internal/model"
)

// Store defines the contract for the durable record store. It owns
// player and game records; lobbies are in-memory engine state and are
// never persisted.
type Store interface {
	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	FindPlayerByName(ctx context.Context, name string) (*model.Player, error)
	// IncrementScore atomically adds delta to a player's score and
	// returns the new total. Concurrent awards must not lose updates.
	IncrementScore(ctx context.Context, id model.PlayerID, delta int) (int, error)
	ListPlayersByScoreDesc(ctx context.Context) ([]*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// ListGames returns games ordered by descending creation time
	ListGames(ctx context.Context) ([]*model.Game, error)
}
