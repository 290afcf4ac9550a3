package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		parsed, err := ParseMove(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	for _, bad := range []string{"", "Rock", "spockk", "gun"} {
		_, err := ParseMove(bad)
		assert.ErrorIs(t, err, ErrInvalidMove)
	}
}

func TestRelationIsBalanced(t *testing.T) {
	// Each move beats exactly two others and loses to exactly two
	for _, m := range Moves {
		wins, losses := 0, 0
		for _, other := range Moves {
			if m == other {
				continue
			}
			if m.Beats(other) {
				wins++
			}
			if other.Beats(m) {
				losses++
			}
		}
		assert.Equal(t, 2, wins, "move %s", m)
		assert.Equal(t, 2, losses, "move %s", m)
	}
}

func TestResolveIsAntisymmetric(t *testing.T) {
	for _, a := range Moves {
		for _, b := range Moves {
			if a == b {
				continue
			}
			outcome := Resolve(a, b)
			reversed := Resolve(b, a)
			require.NotEqual(t, OutcomeTie, outcome, "%s vs %s", a, b)
			if outcome == OutcomeA {
				assert.Equal(t, OutcomeB, reversed, "%s vs %s", a, b)
			} else {
				assert.Equal(t, OutcomeA, reversed, "%s vs %s", a, b)
			}
		}
	}
}

func TestResolveSelfIsTie(t *testing.T) {
	for _, m := range Moves {
		assert.Equal(t, OutcomeTie, Resolve(m, m), "move %s", m)
	}
}

func TestResolveKnownPairs(t *testing.T) {
	tests := []struct {
		a, b    Move
		outcome Outcome
	}{
		{MoveRock, MoveScissors, OutcomeA},
		{MoveRock, MoveLizard, OutcomeA},
		{MovePaper, MoveRock, OutcomeA},
		{MovePaper, MoveSpock, OutcomeA},
		{MoveScissors, MovePaper, OutcomeA},
		{MoveScissors, MoveLizard, OutcomeA},
		{MoveLizard, MovePaper, OutcomeA},
		{MoveLizard, MoveSpock, OutcomeA},
		{MoveSpock, MoveRock, OutcomeA},
		{MoveSpock, MoveScissors, OutcomeA},
		{MoveRock, MovePaper, OutcomeB},
		{MoveScissors, MoveRock, OutcomeB},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.outcome, Resolve(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
