package model

import "fmt"

// Move is one of the five choices a player can submit
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
	MoveLizard   Move = "lizard"
	MoveSpock    Move = "spock"
)

// Moves lists every valid move in a fixed order
var Moves = []Move{MoveRock, MovePaper, MoveScissors, MoveLizard, MoveSpock}

// beatsTable encodes the balanced tournament over the five moves.
// Each move beats exactly two others and loses to the remaining two.
var beatsTable = map[Move][2]Move{
	MoveRock:     {MoveScissors, MoveLizard},
	MovePaper:    {MoveRock, MoveSpock},
	MoveScissors: {MovePaper, MoveLizard},
	MoveLizard:   {MovePaper, MoveSpock},
	MoveSpock:    {MoveRock, MoveScissors},
}

// ParseMove validates a wire value and returns the corresponding Move
func ParseMove(s string) (Move, error) {
	m := Move(s)
	if _, ok := beatsTable[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return m, nil
}

// Beats reports whether m defeats other
func (m Move) Beats(other Move) bool {
	wins := beatsTable[m]
	return wins[0] == other || wins[1] == other
}

// Outcome is the result of resolving two moves
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeA
	OutcomeB
)

// Resolve applies the beats relation to a pair of moves.
// The relation is total and irreflexive, so a tie occurs exactly when
// both moves are equal.
func Resolve(a, b Move) Outcome {
	switch {
	case a.Beats(b):
		return OutcomeA
	case b.Beats(a):
		return OutcomeB
	default:
		return OutcomeTie
	}
}
