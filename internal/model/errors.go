package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player name already taken")
	ErrInvalidName    = errors.New("name must be 2-20 characters")

	// Lobby errors
	ErrLobbyNotFound = errors.New("lobby not found")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidState     = errors.New("operation not valid in current state")
	ErrNotAParticipant  = errors.New("player is not a participant in this game")
	ErrDuplicateChoice  = errors.New("player has already submitted a choice")
	ErrInvalidMove      = errors.New("invalid move")

	// Store errors
	ErrLookupFailure = errors.New("record store unavailable")
)
