package model

import "time"

// LobbyCapacity is the fixed number of players a lobby holds
const LobbyCapacity = 2

// LobbyStatus represents where a lobby is in its lifecycle
type LobbyStatus string

const (
	LobbyStatusWaiting LobbyStatus = "waiting" // fewer than 2 members, or reset after a game
	LobbyStatusReady   LobbyStatus = "ready"   // exactly 2 members, no active game
	LobbyStatusPlaying LobbyStatus = "playing" // an active game is in progress
)

// Lobby is a named two-player waiting room. The id doubles as the
// transport room name. Lobbies live only in memory; the record store
// never sees them.
type Lobby struct {
	ID        string      `json:"id"`
	Players   []Player    `json:"players"`
	Status    LobbyStatus `json:"status"`
	GameID    *GameID     `json:"currentGame,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// IsMember reports whether the player is currently in the lobby
func (l *Lobby) IsMember(id PlayerID) bool {
	for _, p := range l.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// IsFull reports whether the lobby has reached capacity
func (l *Lobby) IsFull() bool {
	return len(l.Players) >= LobbyCapacity
}

// PlayerIDs returns the member ids in join order
func (l *Lobby) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(l.Players))
	for i, p := range l.Players {
		ids[i] = p.ID
	}
	return ids
}

// Clone returns a deep copy safe to hand to broadcast code
func (l *Lobby) Clone() *Lobby {
	c := *l
	c.Players = make([]Player, len(l.Players))
	copy(c.Players, l.Players)
	if l.GameID != nil {
		id := *l.GameID
		c.GameID = &id
	}
	return &c
}
