package pubsub

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSUpstream relays events over a core NATS subject
type NATSUpstream struct {
	nc      *nats.Conn
	subject string
	log     *zap.SugaredLogger

	mu   sync.Mutex
	subs map[chan Event]*nats.Subscription
}

// NewNATSUpstream connects to natsURL
func NewNATSUpstream(natsURL, subject string, log *zap.SugaredLogger) (*NATSUpstream, error) {
	nc, err := nats.Connect(natsURL, nats.Name("playboard"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSUpstream{
		nc:      nc,
		subject: subject,
		log:     log,
		subs:    make(map[chan Event]*nats.Subscription),
	}, nil
}

func (u *NATSUpstream) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		u.log.Errorw("failed to marshal event", "type", event.Type, "error", err)
		return
	}
	if err := u.nc.Publish(u.subject, data); err != nil {
		u.log.Errorw("failed to publish to NATS", "subject", u.subject, "error", err)
	}
}

// Subscribe returns a channel fed from the subject. Malformed messages are skipped.
func (u *NATSUpstream) Subscribe() chan Event {
	ch := make(chan Event, 100)

	sub, err := u.nc.Subscribe(u.subject, func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			u.log.Warnw("failed to unmarshal event", "error", err)
			return
		}
		u.mu.Lock()
		defer u.mu.Unlock()
		if _, live := u.subs[ch]; !live {
			return
		}
		select {
		case ch <- event:
		default:
		}
	})
	if err != nil {
		u.log.Errorw("failed to subscribe", "subject", u.subject, "error", err)
		close(ch)
		return ch
	}

	u.mu.Lock()
	u.subs[ch] = sub
	u.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery and closes ch. Handlers check membership under
// the same lock, so none can send after the close.
func (u *NATSUpstream) Unsubscribe(ch chan Event) {
	u.mu.Lock()
	sub, ok := u.subs[ch]
	if ok {
		delete(u.subs, ch)
		close(ch)
	}
	u.mu.Unlock()
	if !ok {
		return
	}

	if err := sub.Unsubscribe(); err != nil {
		u.log.Warnw("failed to unsubscribe", "error", err)
	}
}

// Close drains the connection and closes every subscriber channel
func (u *NATSUpstream) Close() {
	if err := u.nc.Drain(); err != nil {
		u.nc.Close()
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for ch := range u.subs {
		close(ch)
	}
	u.subs = make(map[chan Event]*nats.Subscription)
}
