// Package library moves recorded sequences across the persistence boundary:
// saving a reviewed recording, and loading a saved play for playback.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/younwookim/playbook/internal/domain/play"
	"github.com/younwookim/playbook/internal/infrastructure/pubsub"
	"github.com/younwookim/playbook/internal/infrastructure/store"
)

// ErrEmptySequence rejects saving a recording with no actions
var ErrEmptySequence = errors.New("no actions recorded")

// Publisher receives change notifications
type Publisher interface {
	Publish(pubsub.Event)
}

// SaveRequest carries a stopped recording and the metadata the user entered
type SaveRequest struct {
	TeamID       string
	Title        string
	SportType    string
	Visibility   string
	Tags         []string
	Actions      play.ActionSequence
	PreviewImage string
	CreatedBy    string
}

// Service saves, loads and lists plays
type Service struct {
	store store.PlayStore
	pub   Publisher
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewService creates a Service. pub may be nil.
func NewService(s store.PlayStore, pub Publisher, log *zap.SugaredLogger) *Service {
	return &Service{
		store: s,
		pub:   pub,
		log:   log,
		now:   time.Now,
	}
}

// Save persists req as a new play. On any error the caller still owns the
// recording and may retry.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*play.Play, error) {
	if len(req.Actions) == 0 {
		return nil, ErrEmptySequence
	}

	payload, err := play.Encode(req.Actions)
	if err != nil {
		return nil, fmt.Errorf("save failed: %w", err)
	}

	now := s.now()
	p := &play.Play{
		TeamID:       req.TeamID,
		Title:        req.Title,
		SportType:    req.SportType,
		DiagramJSON:  payload,
		PreviewImage: req.PreviewImage,
		Visibility:   req.Visibility,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    now.UTC(),
		Tags:         req.Tags,
	}
	if p.Title == "" {
		p.Title = fmt.Sprintf("Recorded Play %d", now.UnixMilli())
	}
	if p.SportType == "" {
		p.SportType = play.DefaultSportType
	}
	if p.Visibility == "" {
		p.Visibility = play.DefaultVisibility
	}

	saved, err := s.store.SavePlay(ctx, p)
	if err != nil {
		s.log.Errorw("save play", "team", req.TeamID, "error", err)
		return nil, fmt.Errorf("save failed: %w", err)
	}
	s.log.Infow("play saved", "id", saved.ID, "title", saved.Title, "actions", len(req.Actions))

	if s.pub != nil {
		s.pub.Publish(pubsub.Event{
			Type: pubsub.EventPlaySaved,
			Payload: map[string]any{
				"id":     saved.ID,
				"teamId": saved.TeamID,
				"title":  saved.Title,
			},
		})
	}
	return saved, nil
}

// Load fetches a play and decodes its actions. An undecodable payload is
// logged and played back as an empty sequence.
func (s *Service) Load(ctx context.Context, id string) (*play.Play, play.ActionSequence, error) {
	p, err := s.store.GetPlay(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load play %s: %w", id, err)
	}

	seq, err := play.Decode(p.DiagramJSON)
	if err != nil {
		s.log.Warnw("play diagram is not an action sequence, playing nothing", "id", id, "error", err)
		return p, play.ActionSequence{}, nil
	}
	return p, seq, nil
}

// List returns the team's plays newest first. A non-empty tag filters.
func (s *Service) List(ctx context.Context, teamID, tag string) ([]play.Play, error) {
	plays, err := s.store.ListPlays(ctx, teamID, tag)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	return plays, nil
}

// SplitTags parses comma separated tags, trimming blanks and dropping empty
// and repeated entries
func SplitTags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
