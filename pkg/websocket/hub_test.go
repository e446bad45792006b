package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(room string) *Client {
	return &Client{Room: room, Send: make(chan []byte, 4)}
}

func recv(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var env struct {
			Type      string          `json:"type"`
			Payload   json.RawMessage `json:"payload"`
			Timestamp string          `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(msg, &env))
		return Envelope{Type: env.Type, Payload: string(env.Payload), Timestamp: env.Timestamp}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Envelope{}
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	feed := newTestClient("")
	other := newTestClient("elsewhere")
	h.Register(feed)
	h.Register(other)
	assert.Equal(t, 1, h.ClientCount(FeedRoom))
	assert.Equal(t, FeedRoom, feed.Room)

	h.Broadcast(FeedRoom, "show_scored", map[string]int{"total": 12})
	env := recv(t, feed)
	assert.Equal(t, "show_scored", env.Type)
	assert.JSONEq(t, `{"total":12}`, env.Payload.(string))
	assert.NotEmpty(t, env.Timestamp)

	// Nothing for clients in other rooms.
	assert.Equal(t, 1, h.ClientCount("elsewhere"))
	select {
	case <-other.Send:
		t.Fatal("unexpected message in other room")
	default:
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := newTestClient("")
	h.Register(c)
	assert.Equal(t, 1, h.ClientCount(FeedRoom))

	h.Unregister(c)
	assert.Equal(t, 0, h.ClientCount(FeedRoom))
	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := &Client{Room: FeedRoom, Send: make(chan []byte)}
	h.Register(c)
	h.Broadcast(FeedRoom, "show_scored", 1)
	assert.Eventually(t, func() bool { return h.ClientCount(FeedRoom) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubStopIsSafe(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()
	c := newTestClient(FeedRoom)
	h.Register(c)

	h.Stop()
	h.Stop()
	<-done

	// After Stop these must return instead of blocking.
	h.Register(newTestClient(FeedRoom))
	h.Broadcast(FeedRoom, "x", nil)
	assert.Equal(t, 0, h.ClientCount(FeedRoom))
	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHubRefPublishAndStop(t *testing.T) {
	ref := NewHubRef(NewHub())
	done := make(chan struct{})
	go func() {
		ref.RunSupervised(time.Millisecond)
		close(done)
	}()

	h, ok := ref.Get()
	require.True(t, ok)
	c := newTestClient(FeedRoom)
	h.Register(c)

	ref.Publish(FeedRoom, "show_scored", "hi")
	assert.Equal(t, "show_scored", recv(t, c).Type)

	ref.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSupervised did not return after Stop")
	}
}
