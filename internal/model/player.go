package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player name constraints, applied after trimming whitespace
const (
	MinNameLength = 2
	MaxNameLength = 20
)

// Player is a persistent game participant. Players are created on first
// identify by name and are never deleted; the score counter only changes
// through match awards.
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"gloryPoints"`
	CreatedAt time.Time `json:"createdAt"`
}
