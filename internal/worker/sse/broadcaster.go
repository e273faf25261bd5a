// Package sse provides the Server-Sent Events activity stream for promptverse.
package sse

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// QueueSize bounds the events buffered per subscriber. A subscriber that
	// falls this far behind is disconnected.
	QueueSize = 64

	// HeartbeatInterval is how often an idle stream receives a comment line.
	HeartbeatInterval = 25 * time.Second
)

// Event types published on the stream.
const (
	EventConnected     = "connected"
	EventPromptCreated = "prompt_created"
	EventPromptUpdated = "prompt_updated"
	EventLikeToggled   = "like_toggled"
	EventCopied        = "copied"
	EventSeedProgress  = "seed_progress"
)

// Event is one activity notification. Client identifiers are never included.
type Event struct {
	Type     string `json:"type"`
	PromptID string `json:"promptId,omitempty"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Likes    *int64 `json:"likes,omitempty"`
	Copies   *int64 `json:"copies,omitempty"`
	Data     any    `json:"data,omitempty"`
	At       int64  `json:"at"`
}

// Subscriber is one connected stream.
type Subscriber struct {
	ID    string
	queue chan []byte
	Done  chan struct{}
	once  sync.Once
}

// Events returns the queued frames, already encoded for the wire.
func (s *Subscriber) Events() <-chan []byte {
	return s.queue
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.Done) })
}

// Broadcaster fans events out to subscribers.
type Broadcaster struct {
	subscribers map[string]*Subscriber
	mu          sync.RWMutex
	nextID      int
	heartbeat   time.Duration
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*Subscriber),
		heartbeat:   HeartbeatInterval,
	}
}

// Subscribe registers a new subscriber.
func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	b.nextID++
	sub := &Subscriber{
		ID:    fmt.Sprintf("sub-%d", b.nextID),
		queue: make(chan []byte, QueueSize),
		Done:  make(chan struct{}),
	}
	b.subscribers[sub.ID] = sub
	count := len(b.subscribers)
	b.mu.Unlock()

	log.Debug().
		Str("subscriberId", sub.ID).
		Int("totalSubscribers", count).
		Msg("SSE subscriber connected")
	return sub
}

// Unsubscribe removes a subscriber and closes its Done channel.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	_, existed := b.subscribers[sub.ID]
	delete(b.subscribers, sub.ID)
	count := len(b.subscribers)
	b.mu.Unlock()

	sub.close()
	if existed {
		log.Debug().
			Str("subscriberId", sub.ID).
			Int("totalSubscribers", count).
			Msg("SSE subscriber disconnected")
	}
}

// Publish queues an event for every subscriber without blocking. Subscribers
// whose queue is full are dropped.
func (b *Broadcaster) Publish(ev Event) {
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("Failed to marshal SSE event")
		return
	}
	frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Type, payload))

	b.mu.RLock()
	var slow []*Subscriber
	for _, sub := range b.subscribers {
		select {
		case sub.queue <- frame:
		default:
			slow = append(slow, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range slow {
		log.Warn().Str("subscriberId", sub.ID).Msg("SSE subscriber too slow, disconnecting")
		b.Unsubscribe(sub)
	}
}

// SubscriberCount returns the number of connected subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// HandleSSE streams events to one HTTP client until it disconnects.
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	_, _ = fmt.Fprintf(w, "event: %s\ndata: {\"type\":%q,\"subscriberId\":%q}\n\n", EventConnected, EventConnected, sub.ID)
	flusher.Flush()

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done:
			return
		case frame := <-sub.queue:
			if _, err := w.Write(frame); err != nil {
				log.Debug().Err(err).Str("subscriberId", sub.ID).Msg("SSE write failed")
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
