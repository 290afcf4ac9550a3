package redis

import (
	"fmt"

	"github.com/jpickering/rpsls-arena/internal/model"
)

// Key prefix for all arena data
const keyPrefix = "arena"

// playerKey returns the Redis key for a Player document
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// nameIndexKey returns the Redis key for the name -> player_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// scoresKey returns the Redis key for the score sorted set.
// Scores live only here; ZIncrBy makes the award atomic.
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}

// gameKey returns the Redis key for a Game document
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesByCreationKey returns the Redis key for the sorted set indexing
// games by creation time
func gamesByCreationKey() string {
	return fmt.Sprintf("%s:idx:games_by_creation", keyPrefix)
}
