package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements PlayStore using PostgreSQL
type PostgresStore struct {
	*sqlStore
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS plays (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		title TEXT NOT NULL,
		sport_type TEXT NOT NULL,
		diagram_json TEXT NOT NULL,
		preview_image TEXT,
		visibility TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS play_tags (
		play_id TEXT NOT NULL REFERENCES plays(id) ON DELETE CASCADE,
		tag TEXT NOT NULL,
		PRIMARY KEY (play_id, tag)
	);

	CREATE INDEX IF NOT EXISTS idx_plays_team ON plays (team_id, created_at);
	`

const (
	pingRetries    = 5
	pingRetryDelay = 2 * time.Second
	pingTimeout    = 10 * time.Second
)

// NewPostgresStore connects to connString, retrying the first ping
func NewPostgresStore(connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)

	var lastErr error
	for i := 0; i < pingRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			break
		}
		if i < pingRetries-1 {
			time.Sleep(pingRetryDelay)
		}
	}
	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", pingRetries, lastErr)
	}

	s := &PostgresStore{&sqlStore{db: db, bind: numberedPlaceholders}}
	if err := s.initSchema(postgresSchema); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
