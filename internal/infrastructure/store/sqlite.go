package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements PlayStore using SQLite
type SQLiteStore struct {
	*sqlStore
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS plays (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		title TEXT NOT NULL,
		sport_type TEXT NOT NULL,
		diagram_json TEXT NOT NULL,
		preview_image TEXT,
		visibility TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS play_tags (
		play_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY (play_id, tag),
		FOREIGN KEY (play_id) REFERENCES plays(id)
	);

	CREATE INDEX IF NOT EXISTS idx_plays_team ON plays (team_id, created_at);
	`

// NewSQLiteStore opens (and creates if needed) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dbPath, err)
	}

	s := &SQLiteStore{&sqlStore{db: db, bind: sameQuery}}
	if err := s.initSchema(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
