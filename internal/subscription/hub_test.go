package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case ev := <-sub.C():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_PublishReachesInterestedSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicTasks)
	defer hub.Unsubscribe(sub)

	hub.Publish(TopicTasks)

	ev := recvEvent(t, sub)
	assert.Equal(t, TopicTasks, ev.Topic)
}

func TestHub_TopicFiltering(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicComments(3))
	defer hub.Unsubscribe(sub)

	hub.Publish(TopicTasks)
	hub.Publish(TopicComments(4))
	hub.Publish(TopicComments(3))

	ev := recvEvent(t, sub)
	assert.Equal(t, "comments/3", ev.Topic)

	select {
	case ev := <-sub.C():
		t.Fatalf("unexpected extra event %+v", ev)
	default:
	}
}

func TestHub_NoTopicsMeansAllTopics(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	hub.Publish(TopicTask(9))

	ev := recvEvent(t, sub)
	assert.Equal(t, "task/9", ev.Topic)
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicTasks)
	defer hub.Unsubscribe(sub)

	// Nobody reads: overflow past the buffer must drop, not deadlock.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(TopicTasks)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicTasks)

	hub.Unsubscribe(sub)

	_, open := <-sub.C()
	require.False(t, open)

	// Double unsubscribe is a no-op.
	hub.Unsubscribe(sub)
}
