// Package pubsub fans out play change notifications to local listeners and,
// when configured, to other boards through NATS.
package pubsub

import (
	"sync"

	"go.uber.org/zap"
)

// Event types
const (
	EventPlaySaved = "play.saved"
)

// Event is a change notification
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Upstream carries events between processes
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub delivers events to in-process subscribers
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream
	log         *zap.SugaredLogger
}

// New creates a local-only PubSub
func New(log *zap.SugaredLogger) *PubSub {
	return &PubSub{
		subscribers: []chan Event{},
		log:         log,
	}
}

// NewWithUpstream creates a PubSub whose Publish goes through upstream.
// Events arriving from upstream, including our own, reach local subscribers.
func NewWithUpstream(upstream Upstream, log *zap.SugaredLogger) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
		log:         log,
	}

	ch := upstream.Subscribe()
	go func() {
		for event := range ch {
			ps.publishLocal(event)
		}
		ps.log.Debugw("upstream channel closed")
	}()

	return ps
}

// Subscribe adds a subscriber. Slow subscribers drop events.
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 10)
	ps.subscribers = append(ps.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscriber
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends event upstream if there is one, otherwise to local subscribers
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		ps.log.Debugw("publish upstream", "type", event.Type)
		ps.upstream.Publish(event)
		return
	}
	ps.publishLocal(event)
}

func (ps *PubSub) publishLocal(event Event) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subscribers {
		select {
		case ch <- event:
		default:
			ps.log.Debugw("subscriber full, event dropped", "type", event.Type)
		}
	}
}
