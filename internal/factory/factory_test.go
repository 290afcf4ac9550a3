package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpickering/rpsls-arena/internal/storage/memory"
	"github.com/jpickering/rpsls-arena/internal/testutil"
)

func TestNewWithMemoryStorage(t *testing.T) {
	app, err := New(Config{
		Logger:      testutil.NopLogger(),
		StorageType: "memory",
	})
	require.NoError(t, err)

	assert.IsType(t, &memory.Store{}, app.Store)
	assert.NotNil(t, app.Registry)
	assert.NotNil(t, app.LobbyStore)
	assert.NotNil(t, app.MatchEngine)
	assert.NotNil(t, app.Coordinator)
	assert.NotNil(t, app.Hub)
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, app.Store)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: "redis"})
	assert.Error(t, err)
}

func TestNewInvalidStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "mongodb"})
	assert.Error(t, err)
}
