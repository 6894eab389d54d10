package store

import (
	"context"
	"sort"
	"sync"

	"github.com/younwookim/playbook/internal/domain/play"
)

// MemoryStore implements PlayStore using in-memory storage
type MemoryStore struct {
	mu    sync.RWMutex
	plays map[string]play.Play
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plays: make(map[string]play.Play)}
}

func (m *MemoryStore) SavePlay(ctx context.Context, p *play.Play) (*play.Play, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved := prepare(p)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays[saved.ID] = *saved

	out := *saved
	return &out, nil
}

func (m *MemoryStore) GetPlay(ctx context.Context, id string) (*play.Play, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plays[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Tags = append([]string(nil), p.Tags...)
	return &p, nil
}

func (m *MemoryStore) ListPlays(ctx context.Context, teamID, tag string) ([]play.Play, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	out := make([]play.Play, 0, len(m.plays))
	for _, p := range m.plays {
		if p.TeamID != teamID || (tag != "" && !p.HasTag(tag)) {
			continue
		}
		p.Tags = append([]string(nil), p.Tags...)
		out = append(out, p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Close is a no-op for memory
func (m *MemoryStore) Close() error {
	return nil
}
