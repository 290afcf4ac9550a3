package model

import "encoding/json"

// EventType identifies a transport event
type EventType string

// Inbound events, sent by clients
const (
	EventIdentify   EventType = "identify"
	EventJoinLobby  EventType = "joinLobby"
	EventStartGame  EventType = "startGame"
	EventMakeChoice EventType = "makeChoice"
	EventLeaveLobby EventType = "leaveLobby"
)

// Outbound events, emitted by the engine
const (
	EventIdentified      EventType = "identified"
	EventLobbyJoined     EventType = "lobbyJoined"
	EventLobbyUpdate     EventType = "lobbyUpdate"
	EventLobbyReady      EventType = "lobbyReady"
	EventGameStarted     EventType = "gameStarted"
	EventChoiceRecorded  EventType = "choiceRecorded"
	EventGameCancelled   EventType = "gameCancelled"
	EventGameResult      EventType = "gameResult"
	EventOperationFailed EventType = "operationFailed"
)

// Event is the outbound envelope broadcast to connections and rooms
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Envelope is the inbound wire frame; the payload stays raw until the
// handler for the event type decodes it.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound payloads

// IdentifyPayload carries the display name for identify
type IdentifyPayload struct {
	Name string `json:"name"`
}

// LobbyPayload carries the lobby id for joinLobby, startGame and leaveLobby
type LobbyPayload struct {
	LobbyID string `json:"lobbyId"`
}

// ChoicePayload carries a move submission
type ChoicePayload struct {
	LobbyID string `json:"lobbyId"`
	Choice  string `json:"choice"`
}

// Outbound payloads

// IdentifiedPayload is sent to the identifying connection only
type IdentifiedPayload struct {
	Player  Player   `json:"player"`
	Lobbies []*Lobby `json:"lobbies"`
}

// GameStartedPayload announces a new game to the lobby room
type GameStartedPayload struct {
	Game  *Game  `json:"game"`
	Lobby *Lobby `json:"lobby"`
}

// ChoiceRecordedPayload announces that a participant has chosen.
// The choice itself is broadcast, not just the fact of choosing, so
// clients can show the reveal; the outcome waits for both choices.
type ChoiceRecordedPayload struct {
	PlayerID PlayerID `json:"playerId"`
	Choice   Move     `json:"choice"`
}

// GameCancelledPayload announces a voided game to the lobby room
type GameCancelledPayload struct {
	Game  *Game  `json:"game"`
	Lobby *Lobby `json:"lobby"`
}

// GameResultPayload announces a completed game to the lobby room
type GameResultPayload struct {
	Game   *Game    `json:"game"`
	Winner PlayerID `json:"winner,omitempty"` // empty means tie
	Lobby  *Lobby   `json:"lobby"`
}

// OperationFailedPayload is sent only to the connection whose request failed
type OperationFailedPayload struct {
	Message string `json:"message"`
}
