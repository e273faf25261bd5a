// Package sse provides the Server-Sent Events activity stream for promptverse.
package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// BroadcasterSuite is a test suite for Broadcaster operations.
type BroadcasterSuite struct {
	suite.Suite
	broadcaster *Broadcaster
}

func (s *BroadcasterSuite) SetupTest() {
	s.broadcaster = NewBroadcaster()
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

// TestSubscribe tests subscriber bookkeeping.
func (s *BroadcasterSuite) TestSubscribe() {
	s.Equal(0, s.broadcaster.SubscriberCount())

	a := s.broadcaster.Subscribe()
	b := s.broadcaster.Subscribe()
	s.NotEqual(a.ID, b.ID)
	s.Equal(2, s.broadcaster.SubscriberCount())

	s.broadcaster.Unsubscribe(a)
	s.Equal(1, s.broadcaster.SubscriberCount())
	select {
	case <-a.Done:
	default:
		s.Fail("Done channel should be closed")
	}

	// Unsubscribing twice is harmless.
	s.broadcaster.Unsubscribe(a)
	s.Equal(1, s.broadcaster.SubscriberCount())
}

// TestPublish_Frames tests the wire format queued for subscribers.
func (s *BroadcasterSuite) TestPublish_Frames() {
	sub := s.broadcaster.Subscribe()
	likes := int64(3)
	s.broadcaster.Publish(Event{Type: EventLikeToggled, PromptID: "p1", Likes: &likes})

	frame := string(<-sub.queue)
	s.True(strings.HasPrefix(frame, "event: like_toggled\ndata: "))
	s.True(strings.HasSuffix(frame, "\n\n"))

	data := strings.TrimSuffix(strings.TrimPrefix(frame, "event: like_toggled\ndata: "), "\n\n")
	var ev Event
	s.Require().NoError(json.Unmarshal([]byte(data), &ev))
	s.Equal("p1", ev.PromptID)
	s.Require().NotNil(ev.Likes)
	s.Equal(int64(3), *ev.Likes)
	s.NotZero(ev.At)
}

// TestPublish_DropsSlowSubscriber tests that a full queue never blocks Publish.
func (s *BroadcasterSuite) TestPublish_DropsSlowSubscriber() {
	slow := s.broadcaster.Subscribe()
	done := make(chan struct{})
	go func() {
		for i := 0; i < QueueSize+5; i++ {
			s.broadcaster.Publish(Event{Type: EventCopied, PromptID: "p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("Publish blocked on a slow subscriber")
	}
	s.Equal(0, s.broadcaster.SubscriberCount())
	<-slow.Done
}

// TestPublish_NoSubscribers tests publishing into an empty broadcaster.
func (s *BroadcasterSuite) TestPublish_NoSubscribers() {
	s.NotPanics(func() {
		s.broadcaster.Publish(Event{Type: EventSeedProgress, Data: map[string]int{"cursor": 1}})
	})
}

func TestHandleSSE_StreamsEvents(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(http.HandlerFunc(b.HandleSSE))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readFrame := func() string {
		var sb strings.Builder
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return sb.String()
			}
			sb.WriteString(line)
		}
	}

	require.Contains(t, readFrame(), "event: connected")
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Publish(Event{Type: EventPromptCreated, PromptID: "abc", Title: "T"})
	frame := readFrame()
	require.Contains(t, frame, "event: prompt_created")
	require.Contains(t, frame, `"promptId":"abc"`)

	cancel()
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHandleSSE_Heartbeat(t *testing.T) {
	b := NewBroadcaster()
	b.heartbeat = 20 * time.Millisecond
	srv := httptest.NewServer(http.HandlerFunc(b.HandleSSE))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if line == ": ping\n" {
			return
		}
	}
	t.Fatal("no heartbeat received")
}
