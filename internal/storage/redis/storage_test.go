package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jpickering/rpsls-arena/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *redis.Client
	store  *Store
	ctx    context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.store = NewWithClient(s.client, Config{})
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.client.Close()
}

func (s *StoreSuite) player(id, name string, score int) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		Name:      name,
		Score:     score,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StoreSuite) TestCreateAndGetPlayer() {
	err := s.store.CreatePlayer(s.ctx, s.player("p1", "alice", 0))
	s.Require().NoError(err)

	got, err := s.store.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("alice", got.Name)
	s.Equal(0, got.Score)
}

func (s *StoreSuite) TestGetPlayerNotFound() {
	_, err := s.store.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestCreatePlayerDuplicateName() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p1", "alice", 0)))

	err := s.store.CreatePlayer(s.ctx, s.player("p2", "alice", 0))
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StoreSuite) TestFindPlayerByName() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p1", "alice", 0)))

	got, err := s.store.FindPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.ID)

	_, err = s.store.FindPlayerByName(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestIncrementScore() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p1", "alice", 0)))

	total, err := s.store.IncrementScore(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Equal(10, total)

	total, err = s.store.IncrementScore(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Equal(20, total)

	// The sorted set is authoritative when reading the player back
	got, err := s.store.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(20, got.Score)
}

func (s *StoreSuite) TestIncrementScoreUnknownPlayer() {
	_, err := s.store.IncrementScore(s.ctx, "nonexistent", 10)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestListPlayersByScoreDesc() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p1", "alice", 0)))
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p2", "bob", 0)))
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.player("p3", "carol", 0)))
	_, err := s.store.IncrementScore(s.ctx, "p2", 30)
	s.Require().NoError(err)
	_, err = s.store.IncrementScore(s.ctx, "p3", 10)
	s.Require().NoError(err)

	players, err := s.store.ListPlayersByScoreDesc(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("bob", players[0].Name)
	s.Equal(30, players[0].Score)
	s.Equal("carol", players[1].Name)
	s.Equal("alice", players[2].Name)
}

func (s *StoreSuite) TestListPlayersEmpty() {
	players, err := s.store.ListPlayersByScoreDesc(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StoreSuite) game(id string, createdAt time.Time) *model.Game {
	return &model.Game{
		ID:        model.GameID(id),
		LobbyID:   "L1",
		Status:    model.GameStatusActive,
		Players:   [2]model.PlayerID{"p1", "p2"},
		CreatedAt: createdAt,
	}
}

func (s *StoreSuite) TestSaveAndGetGame() {
	game := s.game("g1", time.Now().UTC().Truncate(time.Millisecond))
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	got, err := s.store.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(game.Players, got.Players)
	s.Equal(model.GameStatusActive, got.Status)
}

func (s *StoreSuite) TestGetGameNotFound() {
	_, err := s.store.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StoreSuite) TestSaveGameOverwrites() {
	game := s.game("g1", time.Now())
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	game.Status = model.GameStatusCancelled
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	got, err := s.store.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusCancelled, got.Status)
}

func (s *StoreSuite) TestListGamesNewestFirst() {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.SaveGame(s.ctx, s.game("g1", base)))
	s.Require().NoError(s.store.SaveGame(s.ctx, s.game("g2", base.Add(time.Minute))))
	s.Require().NoError(s.store.SaveGame(s.ctx, s.game("g3", base.Add(2*time.Minute))))

	games, err := s.store.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("g3"), games[0].ID)
	s.Equal(model.GameID("g2"), games[1].ID)
	s.Equal(model.GameID("g1"), games[2].ID)
}

func (s *StoreSuite) TestListGamesEmpty() {
	games, err := s.store.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}
