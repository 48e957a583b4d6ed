// Package subscription implements the push-based invalidation model: every
// mutation publishes the topics it touched, and long-lived query holders
// (the SSE endpoint, in-process listeners) re-fetch on delivery instead of
// polling.
package subscription

import (
	"fmt"
	"sync"
	"time"
)

// Topic names. A task list subscriber watches TopicTasks; detail and comment
// views watch the per-task topics.
const TopicTasks = "tasks"

func TopicTask(number uint64) string {
	return fmt.Sprintf("task/%d", number)
}

func TopicComments(number uint64) string {
	return fmt.Sprintf("comments/%d", number)
}

// Event is one invalidation notice. It carries no payload: receivers re-run
// their query, which keeps delivery idempotent.
type Event struct {
	Topic string    `json:"topic"`
	At    time.Time `json:"at"`
}

// Subscriber receives events for its topics on C. The channel is buffered;
// when a receiver falls behind, events are dropped rather than blocking the
// publishing mutation. A dropped invalidation is harmless because the next
// one triggers the same re-fetch.
type Subscriber struct {
	ch     chan Event
	topics map[string]struct{}
}

func (s *Subscriber) C() <-chan Event {
	return s.ch
}

func (s *Subscriber) wants(topic string) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}

// Hub fans invalidation events out to subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for the given topics; no topics means
// every topic.
func (h *Hub) Subscribe(topics ...string) *Subscriber {
	sub := &Subscriber{
		ch:     make(chan Event, 16),
		topics: make(map[string]struct{}, len(topics)),
	}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Publish delivers an invalidation for topic to every interested subscriber
// without blocking the caller.
func (h *Hub) Publish(topic string) {
	ev := Event{Topic: topic, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if !sub.wants(topic) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
