package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Loader loads board configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadBoard loads board.json and applies environment overrides
func (l *Loader) LoadBoard() (*BoardConfig, error) {
	data, err := fs.ReadFile(l.fsys, "board.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read board.json: %w", err)
	}

	var cfg BoardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse board.json: %w", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv(os.LookupEnv)
	return &cfg, nil
}

func (c *BoardConfig) applyDefaults() {
	if c.Display.Scale <= 0 {
		c.Display.Scale = 1
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = 60
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
	if c.PubSub.Subject == "" {
		c.PubSub.Subject = "plays.events"
	}
}

// ApplyEnv overrides store, pubsub and log settings from the environment
func (c *BoardConfig) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"DB_DRIVER", &c.Store.Driver},
		{"SQLITE_FILE", &c.Store.SQLiteFile},
		{"DATABASE_URL", &c.Store.DatabaseURL},
		{"NATS_URL", &c.PubSub.NATSURL},
		{"LOG_LEVEL", &c.Log.Level},
		{"TEAM_ID", &c.Team.ID},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}
