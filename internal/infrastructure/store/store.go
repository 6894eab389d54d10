// Package store persists saved plays. The application only ever treats
// diagram_json as an opaque payload here.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/playbook/internal/domain/play"
)

// ErrNotFound is returned when a play id does not exist
var ErrNotFound = errors.New("play not found")

// PlayStore defines the persistence boundary for plays
type PlayStore interface {
	SavePlay(ctx context.Context, p *play.Play) (*play.Play, error)
	GetPlay(ctx context.Context, id string) (*play.Play, error)
	ListPlays(ctx context.Context, teamID, tag string) ([]play.Play, error)
	Close() error
}

// prepare fills in the id and creation time of a new play
func prepare(p *play.Play) *play.Play {
	out := *p
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	out.Tags = append([]string(nil), p.Tags...)
	return &out
}

// Open returns the store for driver: "memory", "sqlite" or "postgres"
func Open(driver, sqliteFile, databaseURL string) (PlayStore, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if sqliteFile == "" {
			sqliteFile = "playboard.sqlite"
		}
		s, err := NewSQLiteStore(sqliteFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if databaseURL == "" {
			return nil, errors.New("postgres driver requires a database url")
		}
		s, err := NewPostgresStore(databaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
