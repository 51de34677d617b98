package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	a := &Client{hub: h, send: make(chan []byte, 4)}
	b := &Client{hub: h, send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	h.PublishJobEvent(EventJobCreated, "42", "Go Engineer")

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			var evt JobEvent
			require.NoError(t, json.Unmarshal(msg, &evt))
			assert.Equal(t, EventJobCreated, evt.Type)
			assert.Equal(t, "42", evt.JobID)
		case <-time.After(time.Second):
			t.Fatal("client did not receive event")
		}
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	slow := &Client{hub: h, send: make(chan []byte)}
	h.Register(slow)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Broadcast([]byte("x"))
	waitFor(t, func() bool { return h.ClientCount() == 0 })

	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	cancel()
	<-done
	assert.Zero(t, h.ClientCount())
}

func TestNilHubIsSafe(t *testing.T) {
	var h *Hub
	h.Broadcast([]byte("x"))
	h.PublishJobEvent(EventJobDeleted, "1", "")
	assert.Zero(t, h.ClientCount())
}
