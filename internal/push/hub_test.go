package push

import (
	"fmt"
	"testing"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, bufferSize int) *Client {
	c := &Client{
		ID:   "test-client",
		hub:  hub,
		send: make(chan []byte, bufferSize),
	}
	hub.register(c)
	return c
}

func receiveEvent(t *testing.T, c *Client) *Event {
	t.Helper()

	select {
	case payload := <-c.send:
		event := &Event{}
		require.NoError(t, json.Unmarshal(payload, event))
		return event
	case <-time.After(time.Second):
		t.Fatal("nenhum evento recebido")
		return nil
	}
}

func TestHub_BroadcastReachesOnlySubscribers(t *testing.T) {
	hub := NewHub()

	subscribed := newTestClient(hub, 8)
	bystander := newTestClient(hub, 8)

	hub.join(RoomUpdates, subscribed)

	hub.BroadcastUmblerUpdate(&domain.NormalizedEvent{
		Type:    domain.WebhookEventContact,
		EventID: "EV1",
		Contact: &domain.Contact{ID: "C1", Name: "Maria"},
	})

	event := receiveEvent(t, subscribed)
	assert.Equal(t, EventUmblerUpdate, event.Type)

	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "EV1", data["event_id"])
	assert.Contains(t, data, "contact")

	assert.Empty(t, bystander.send)
}

func TestHub_ClientCounts(t *testing.T) {
	hub := NewHub()

	first := newTestClient(hub, 1)
	second := newTestClient(hub, 1)
	hub.join(RoomUpdates, second)

	connected, subscribed := hub.ClientCounts()
	assert.Equal(t, 2, connected)
	assert.Equal(t, 1, subscribed)

	hub.leave(RoomUpdates, second)
	_, subscribed = hub.ClientCounts()
	assert.Equal(t, 0, subscribed)

	hub.unregister(first)
	connected, _ = hub.ClientCounts()
	assert.Equal(t, 1, connected)
}

func TestHub_UnregisterLeavesAllRooms(t *testing.T) {
	hub := NewHub()

	c := newTestClient(hub, 1)
	hub.join(RoomUpdates, c)

	hub.unregister(c)

	connected, subscribed := hub.ClientCounts()
	assert.Equal(t, 0, connected)
	assert.Equal(t, 0, subscribed)

	// unregister repetido é inofensivo
	hub.unregister(c)
}

func TestHub_BroadcastDuringUnregister(t *testing.T) {
	hub := NewHub()

	clients := make([]*Client, 0, 50)
	for i := 0; i < 50; i++ {
		c := &Client{
			ID:   fmt.Sprintf("cliente-%d", i),
			hub:  hub,
			send: make(chan []byte, 1),
		}
		hub.register(c)
		hub.join(RoomUpdates, c)
		clients = append(clients, c)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.BroadcastUmblerUpdate(&domain.NormalizedEvent{
				Type:    domain.WebhookEventMessage,
				EventID: "EV3",
				Message: &domain.Message{ID: "M2"},
			})
		}
	}()

	for _, c := range clients {
		hub.unregister(c)
	}
	<-done

	assert.Eventually(t, func() bool {
		connected, subscribed := hub.ClientCounts()
		return connected == 0 && subscribed == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_DropsClientWithFullBuffer(t *testing.T) {
	hub := NewHub()

	slow := newTestClient(hub, 1)
	hub.join(RoomUpdates, slow)
	slow.send <- []byte("ocupado")

	hub.BroadcastUmblerUpdate(&domain.NormalizedEvent{
		Type:    domain.WebhookEventMessage,
		EventID: "EV2",
		Message: &domain.Message{ID: "M1"},
	})

	// A desconexão acontece em goroutine própria
	assert.Eventually(t, func() bool {
		connected, _ := hub.ClientCounts()
		return connected == 0
	}, time.Second, 10*time.Millisecond)
}
