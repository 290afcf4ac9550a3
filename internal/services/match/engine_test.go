package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jpickering/rpsls-arena/internal/dependencies/mocks"
	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/storage/memory"
	"github.com/jpickering/rpsls-arena/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	store  *memory.Store
	clock  *mocks.MockClock
	random *mocks.MockRandom
	engine *Engine
	ctx    context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.engine = NewEngine(s.store, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *EngineSuite) createPlayers(ids ...model.PlayerID) {
	for _, id := range ids {
		s.Require().NoError(s.store.CreatePlayer(s.ctx, &model.Player{
			ID:        id,
			Name:      string(id),
			CreatedAt: s.clock.Now(),
		}))
	}
}

func (s *EngineSuite) createGame(players [2]model.PlayerID) *model.Game {
	s.random.QueueString("GAME00000001")
	game, err := s.engine.CreateGame(s.ctx, "L1", players)
	s.Require().NoError(err)
	return game
}

func (s *EngineSuite) TestCreateGame() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	s.Equal(model.GameID("GAME00000001"), game.ID)
	s.Equal("L1", game.LobbyID)
	s.Equal(model.GameStatusActive, game.Status)
	s.Nil(game.Choices[0])
	s.Nil(game.Choices[1])

	stored, err := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Players, stored.Players)
}

func (s *EngineSuite) TestSubmitChoice() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	updated, complete, err := s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MoveRock)
	s.Require().NoError(err)
	s.False(complete)
	mv, chosen := updated.Choice("alice")
	s.Require().True(chosen)
	s.Equal(model.MoveRock, mv)
	_, chosen = updated.Choice("bob")
	s.False(chosen)

	updated, complete, err = s.engine.SubmitChoice(s.ctx, game.ID, "bob", model.MoveScissors)
	s.Require().NoError(err)
	s.True(complete)
}

func (s *EngineSuite) TestSubmitChoiceDuplicateKeepsFirst() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	_, _, err := s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MoveRock)
	s.Require().NoError(err)

	_, _, err = s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MovePaper)
	s.ErrorIs(err, model.ErrDuplicateChoice)

	stored, err := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	mv, chosen := stored.Choice("alice")
	s.Require().True(chosen)
	s.Equal(model.MoveRock, mv)
}

func (s *EngineSuite) TestSubmitChoiceNotAParticipant() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	_, _, err := s.engine.SubmitChoice(s.ctx, game.ID, "mallory", model.MoveRock)
	s.ErrorIs(err, model.ErrNotAParticipant)
}

func (s *EngineSuite) TestSubmitChoiceUnknownGame() {
	_, _, err := s.engine.SubmitChoice(s.ctx, "nonexistent", "alice", model.MoveRock)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *EngineSuite) TestSubmitChoiceInactiveGame() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})
	_, err := s.engine.Cancel(s.ctx, game.ID)
	s.Require().NoError(err)

	_, _, err = s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MoveRock)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *EngineSuite) finalizeRockScissors(firstChooser, secondChooser model.PlayerID) (*model.Game, model.PlayerID) {
	s.createPlayers("alice", "bob")
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	choices := map[model.PlayerID]model.Move{"alice": model.MoveRock, "bob": model.MoveScissors}
	_, _, err := s.engine.SubmitChoice(s.ctx, game.ID, firstChooser, choices[firstChooser])
	s.Require().NoError(err)
	game, complete, err := s.engine.SubmitChoice(s.ctx, game.ID, secondChooser, choices[secondChooser])
	s.Require().NoError(err)
	s.Require().True(complete)

	final, winner, err := s.engine.Finalize(s.ctx, game)
	s.Require().NoError(err)
	return final, winner
}

func (s *EngineSuite) TestFinalizeAwardsWinner() {
	final, winner := s.finalizeRockScissors("alice", "bob")

	s.Equal(model.PlayerID("alice"), winner)
	s.Equal(model.GameStatusCompleted, final.Status)
	s.Equal(model.PlayerID("alice"), final.Winner)
	s.Equal(s.clock.CurrentTime, final.CompletedAt)

	player, err := s.store.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(WinnerAward, player.Score)

	loser, err := s.store.GetPlayer(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(0, loser.Score)
}

func (s *EngineSuite) TestFinalizeIndependentOfSubmissionOrder() {
	_, winner := s.finalizeRockScissors("bob", "alice")
	s.Equal(model.PlayerID("alice"), winner)
}

func (s *EngineSuite) TestFinalizeTieAwardsNobody() {
	s.createPlayers("alice", "bob")
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	_, _, err := s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MoveSpock)
	s.Require().NoError(err)
	game, _, err = s.engine.SubmitChoice(s.ctx, game.ID, "bob", model.MoveSpock)
	s.Require().NoError(err)

	final, winner, err := s.engine.Finalize(s.ctx, game)
	s.Require().NoError(err)
	s.Empty(winner)
	s.Equal(model.GameStatusCompleted, final.Status)
	s.Empty(final.Winner)

	for _, id := range []model.PlayerID{"alice", "bob"} {
		player, err := s.store.GetPlayer(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(0, player.Score)
	}
}

func (s *EngineSuite) TestFinalizeIncompleteGame() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})
	_, _, err := s.engine.SubmitChoice(s.ctx, game.ID, "alice", model.MoveRock)
	s.Require().NoError(err)

	game, err = s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	_, _, err = s.engine.Finalize(s.ctx, game)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *EngineSuite) TestCancel() {
	game := s.createGame([2]model.PlayerID{"alice", "bob"})

	cancelled, err := s.engine.Cancel(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusCancelled, cancelled.Status)
	s.Equal(s.clock.CurrentTime, cancelled.CompletedAt)
}

func (s *EngineSuite) TestCancelCompletedGameIsNoOp() {
	final, _ := s.finalizeRockScissors("alice", "bob")

	cancelled, err := s.engine.Cancel(s.ctx, final.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusCompleted, cancelled.Status)
}
