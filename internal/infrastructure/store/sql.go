package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/younwookim/playbook/internal/domain/play"
)

// sqlStore holds the queries shared by the SQLite and Postgres stores.
// Queries are written with ? placeholders and passed through bind.
type sqlStore struct {
	db   *sql.DB
	bind func(string) string
}

const playColumns = `id, team_id, title, sport_type, diagram_json, preview_image, visibility, created_by, created_at`

func (s *sqlStore) initSchema(schema string) error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *sqlStore) SavePlay(ctx context.Context, p *play.Play) (*play.Play, error) {
	saved := prepare(p)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.bind(`INSERT INTO plays (`+playColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		saved.ID, saved.TeamID, saved.Title, saved.SportType, saved.DiagramJSON,
		saved.PreviewImage, saved.Visibility, saved.CreatedBy, saved.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert play: %w", err)
	}

	for _, tag := range saved.Tags {
		if _, err := tx.ExecContext(ctx, s.bind(`INSERT INTO play_tags (play_id, tag) VALUES (?, ?)`), saved.ID, tag); err != nil {
			return nil, fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	saved.CreatedAt = time.UnixMilli(saved.CreatedAt.UnixMilli()).UTC()
	return saved, nil
}

func (s *sqlStore) GetPlay(ctx context.Context, id string) (*play.Play, error) {
	row := s.db.QueryRowContext(ctx, s.bind(`SELECT `+playColumns+` FROM plays WHERE id = ?`), id)
	p, err := scanPlay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tags, err := s.tags(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Tags = tags
	return &p, nil
}

func (s *sqlStore) ListPlays(ctx context.Context, teamID, tag string) ([]play.Play, error) {
	query := `SELECT ` + playColumns + ` FROM plays WHERE team_id = ?`
	args := []any{teamID}
	if tag != "" {
		query += ` AND id IN (SELECT play_id FROM play_tags WHERE tag = ?)`
		args = append(args, tag)
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, err
	}

	var plays []play.Play
	for rows.Next() {
		p, err := scanPlay(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plays = append(plays, p)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	// tags are fetched after the cursor closes; sqlite runs on one connection
	for i := range plays {
		if plays[i].Tags, err = s.tags(ctx, plays[i].ID); err != nil {
			return nil, err
		}
	}
	return plays, nil
}

func (s *sqlStore) tags(ctx context.Context, playID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`SELECT tag FROM play_tags WHERE play_id = ? ORDER BY tag`), playID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlay(r rowScanner) (play.Play, error) {
	var (
		p       play.Play
		preview sql.NullString
		created int64
	)
	err := r.Scan(&p.ID, &p.TeamID, &p.Title, &p.SportType, &p.DiagramJSON,
		&preview, &p.Visibility, &p.CreatedBy, &created)
	if err != nil {
		return play.Play{}, err
	}
	p.PreviewImage = preview.String
	p.CreatedAt = time.UnixMilli(created).UTC()
	return p, nil
}

// numberedPlaceholders rewrites ? placeholders to $1, $2, ...
func numberedPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sameQuery(query string) string {
	return query
}
