package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadBoard(t *testing.T) {
	loader := NewLoader("../../../cmd/playboard/configs")

	cfg, err := loader.LoadBoard()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Display.Scale)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 200, cfg.Timing.DrawStartMs)
	assert.Equal(t, 40, cfg.Timing.DrawMoveMs)
	assert.Equal(t, 300, cfg.Timing.PlayerMoveMs)
	assert.Equal(t, "plays.events", cfg.PubSub.Subject)
	assert.Equal(t, "basketball", cfg.Team.Sport)
}

func TestLoader_Defaults(t *testing.T) {
	fsys := fstest.MapFS{
		"board.json": {Data: []byte(`{"team":{"id":"t1"}}`)},
	}

	cfg, err := NewFSLoader(fsys, ".").LoadBoard()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Display.Scale)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, "plays.events", cfg.PubSub.Subject)
	assert.Equal(t, "t1", cfg.Team.ID)
	assert.Equal(t, 0, cfg.Timing.DrawMoveMs, "zero timing keeps the playback default")
}

func TestLoader_Errors(t *testing.T) {
	_, err := NewFSLoader(fstest.MapFS{}, ".").LoadBoard()
	assert.ErrorContains(t, err, "failed to read board.json")

	bad := fstest.MapFS{"board.json": {Data: []byte(`{"display":`)}}
	_, err = NewFSLoader(bad, ".").LoadBoard()
	assert.ErrorContains(t, err, "failed to parse board.json")
}

func TestBoardConfig_ApplyEnv(t *testing.T) {
	cfg := BoardConfig{Store: StoreConfig{Driver: "memory"}}
	env := map[string]string{
		"DB_DRIVER":    "postgres",
		"DATABASE_URL": "postgres://coach@db/plays",
		"NATS_URL":     "nats://localhost:4222",
		"LOG_LEVEL":    "",
	}

	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://coach@db/plays", cfg.Store.DatabaseURL)
	assert.Equal(t, "nats://localhost:4222", cfg.PubSub.NATSURL)
	assert.Equal(t, "", cfg.Log.Level, "empty values do not override")
}
