package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusActive    GameStatus = "active"    // collecting choices
	GameStatusCompleted GameStatus = "completed" // both choices in, winner resolved
	GameStatusCancelled GameStatus = "cancelled" // voided before completion
)

// Game is one instance of simultaneous-choice play between the two
// lobby members captured at start time. Choices are held in a fixed
// two-slot structure indexed by participant position rather than an
// open map; the game never has more than two participants.
type Game struct {
	ID          GameID        `json:"id"`
	LobbyID     string        `json:"lobbyId"`
	Status      GameStatus    `json:"status"`
	Players     [2]PlayerID   `json:"players"`
	Choices     [2]*Move      `json:"choices"`
	Winner      PlayerID      `json:"winner,omitempty"` // empty means tie or undecided
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt time.Time     `json:"completedAt,omitzero"`
}

// Slot returns the choice-slot index for the player, or -1 if the
// player is not a participant.
func (g *Game) Slot(id PlayerID) int {
	for i, p := range g.Players {
		if p == id {
			return i
		}
	}
	return -1
}

// Choice returns the recorded move for the player, if any
func (g *Game) Choice(id PlayerID) (Move, bool) {
	i := g.Slot(id)
	if i < 0 || g.Choices[i] == nil {
		return "", false
	}
	return *g.Choices[i], true
}

// BothChosen reports whether both participants have submitted
func (g *Game) BothChosen() bool {
	return g.Choices[0] != nil && g.Choices[1] != nil
}
