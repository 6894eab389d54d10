package pubsub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func nopLog() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func receive(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublish_ReachesEverySubscriber(t *testing.T) {
	ps := New(nopLog())
	a := ps.Subscribe()
	b := ps.Subscribe()

	ps.Publish(Event{Type: EventPlaySaved, Payload: map[string]any{"id": "p1"}})

	for _, ch := range []chan Event{a, b} {
		ev := receive(t, ch)
		assert.Equal(t, EventPlaySaved, ev.Type)
		assert.Equal(t, "p1", ev.Payload["id"])
	}
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	ps := New(nopLog())
	ch := ps.Subscribe()
	ps.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after unsubscribe must not panic
	ps.Publish(Event{Type: EventPlaySaved})
	ps.Unsubscribe(ch)
}

func TestPublish_FullSubscriberDrops(t *testing.T) {
	ps := New(nopLog())
	ch := ps.Subscribe()

	for i := 0; i < cap(ch)+5; i++ {
		ps.Publish(Event{Type: EventPlaySaved})
	}
	assert.Len(t, ch, cap(ch))
}

type loopbackUpstream struct {
	mu        sync.Mutex
	ch        chan Event
	published []Event
}

func (l *loopbackUpstream) Publish(ev Event) {
	l.mu.Lock()
	l.published = append(l.published, ev)
	l.mu.Unlock()
	l.ch <- ev
}

func (l *loopbackUpstream) Subscribe() chan Event {
	return l.ch
}

func (l *loopbackUpstream) Unsubscribe(ch chan Event) {
	close(ch)
}

func TestNewWithUpstream_RoutesThroughUpstream(t *testing.T) {
	up := &loopbackUpstream{ch: make(chan Event, 4)}
	ps := NewWithUpstream(up, nopLog())
	sub := ps.Subscribe()

	ps.Publish(Event{Type: EventPlaySaved, Payload: map[string]any{"id": "p2"}})

	ev := receive(t, sub)
	assert.Equal(t, "p2", ev.Payload["id"])

	up.mu.Lock()
	defer up.mu.Unlock()
	assert.Len(t, up.published, 1)
}
