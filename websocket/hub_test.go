package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{
		hub:   hub,
		send:  make(chan []byte, 4),
		rooms: make(map[string]bool),
	}
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case msg := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
		return Event{}
	}
}

func TestBroadcastToRoom(t *testing.T) {
	InitHub()

	joined := newTestClient()
	joined.joinRoom(RecruiterRoom)

	bystander := newTestClient()
	bystander.joinRoom("other")

	BroadcastToRoom(RecruiterRoom, EventNewRequest, map[string]string{"id": "abc"})

	event := receiveEvent(t, joined)
	assert.Equal(t, EventNewRequest, event.Type)

	select {
	case <-bystander.send:
		t.Fatal("bystander received an event for a room it never joined")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	InitHub()

	client := newTestClient()
	client.joinRoom(RecruiterRoom)
	client.leaveRoom(RecruiterRoom)

	BroadcastToRoom(RecruiterRoom, EventStatusUpdate, map[string]string{"id": "abc"})

	select {
	case <-client.send:
		t.Fatal("received an event after leaving the room")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowClientDropped(t *testing.T) {
	InitHub()

	slow := &Client{
		hub:   hub,
		send:  make(chan []byte), // unbuffered and never read
		rooms: make(map[string]bool),
	}
	slow.joinRoom(RecruiterRoom)

	BroadcastToRoom(RecruiterRoom, EventRequestDeleted, map[string]string{"id": "abc"})

	hub.roomsMux.RLock()
	_, stillJoined := hub.rooms[RecruiterRoom]
	hub.roomsMux.RUnlock()
	assert.False(t, stillJoined, "slow client should be dropped from the room")
}

func TestBroadcastDuringDisconnect(t *testing.T) {
	InitHub()

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					BroadcastToRoom(RecruiterRoom, EventStatusUpdate, map[string]string{"id": "abc"})
				}
			}
		}()
	}

	// Churn sessions through the recruiters room while broadcasts are in
	// flight. A send on a closed channel panics, failing the test.
	for i := 0; i < 200; i++ {
		client := newTestClient()
		hub.register <- client
		client.joinRoom(RecruiterRoom)
		go func() {
			for range client.send {
			}
		}()
		hub.unregister <- client
	}

	close(done)
	wg.Wait()
}

func TestHandleIncomingMessage(t *testing.T) {
	InitHub()
	client := newTestClient()

	inRoom := func(room string) bool {
		hub.roomsMux.RLock()
		defer hub.roomsMux.RUnlock()
		return hub.rooms[room][client]
	}

	HandleIncomingMessage(client, []byte(`{"type":"join_room","payload":"recruiters"}`))
	assert.True(t, inRoom(RecruiterRoom))

	HandleIncomingMessage(client, []byte(`{"type":"leave_room","payload":"recruiters"}`))
	assert.False(t, inRoom(RecruiterRoom))

	// Legacy join event used by the original dashboard client
	HandleIncomingMessage(client, []byte(`{"type":"join-recruiter"}`))
	assert.True(t, inRoom(RecruiterRoom))

	// Malformed payloads are ignored
	HandleIncomingMessage(client, []byte(`{"type":"join_room","payload":42}`))
	HandleIncomingMessage(client, []byte(`not json`))
	assert.True(t, inRoom(RecruiterRoom))
}

func TestBackplaneRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb = nil
		client.Close()
	})

	InitHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	InitBackplane(ctx, client)

	session := newTestClient()
	session.joinRoom(RecruiterRoom)

	// Give the pattern subscription time to register
	time.Sleep(50 * time.Millisecond)

	BroadcastToRoom(RecruiterRoom, EventNewRequest, map[string]string{"id": "abc"})

	event := receiveEvent(t, session)
	assert.Equal(t, EventNewRequest, event.Type)
}
