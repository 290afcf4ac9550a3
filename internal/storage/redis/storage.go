package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jpickering/rpsls-arena/internal/model"
	"github.com/jpickering/rpsls-arena/internal/storage"
)

// Store is a Redis-backed implementation of the record store.
// Player documents are JSON values; scores live in a sorted set so
// that awards are a single atomic ZINCRBY and the leaderboard is a
// range read.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Player operations

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Claim the name first; losing the race means the name is taken
	ok, err := s.client.SetNX(ctx, nameIndexKey(player.Name), string(player.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrPlayerExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.ZAdd(ctx, scoresKey(), redis.Z{Score: float64(player.Score), Member: string(player.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}

	// The sorted set is authoritative for scores
	score, err := s.client.ZScore(ctx, scoresKey(), string(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		player.Score = int(score)
	}
	return &player, nil
}

func (s *Store) FindPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	id, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Store) IncrementScore(ctx context.Context, id model.PlayerID, delta int) (int, error) {
	exists, err := s.client.Exists(ctx, playerKey(id)).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrPlayerNotFound
	}

	total, err := s.client.ZIncrBy(ctx, scoresKey(), float64(delta), string(id)).Result()
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (s *Store) ListPlayersByScoreDesc(ctx context.Context) ([]*model.Player, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, scoresKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = playerKey(model.PlayerID(e.Member.(string)))
	}

	docs, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(entries))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			// Index entry without a document; skip rather than fail the listing
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, err
		}
		player.Score = int(entries[i].Score)
		players = append(players, &player)
	}
	return players, nil
}

// Game operations

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.ZAdd(ctx, gamesByCreationKey(), redis.Z{
		Score:  float64(game.CreatedAt.UnixMilli()),
		Member: string(game.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Store) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.ZRevRange(ctx, gamesByCreationKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	docs, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, nil
}
