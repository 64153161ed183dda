package push

import (
	"sync"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hub mantém os clientes websocket conectados e as salas de inscrição.
// Entrega sem garantia: cliente com buffer de envio cheio é derrubado em vez
// de atrasar os demais.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}

	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	// O canal send não é fechado aqui: um broadcast em andamento ainda pode
	// estar escrevendo nele. O writePump encerra sozinho quando a conexão
	// fecha e o ping falha
}

func (h *Hub) join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
}

func (h *Hub) leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members := h.rooms[room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast entrega o evento a todos os clientes da sala. Cliente sem espaço
// no buffer de envio é desconectado.
func (h *Hub) Broadcast(room string, event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("push: failed to marshal broadcast event")
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.send <- payload:
		default:
			logrus.WithField("client_id", c.ID).Warn("push: send buffer full, dropping client")
			go c.Close()
		}
	}
}

// BroadcastUmblerUpdate repassa um evento de ingestão para a sala de updates
func (h *Hub) BroadcastUmblerUpdate(event *domain.NormalizedEvent) {
	data := map[string]any{
		"event_type":  event.Type,
		"event_id":    event.EventID,
		"received_at": event.ReceivedAt,
	}

	switch event.Type {
	case domain.WebhookEventContact:
		data["contact"] = event.Contact
	case domain.WebhookEventMessage:
		data["message"] = event.Message
	case domain.WebhookEventConversation:
		data["conversation"] = event.Conversation
	}

	h.Broadcast(RoomUpdates, &Event{Type: EventUmblerUpdate, Data: data})
}

// ClientCounts retorna o total de clientes conectados e quantos estão
// inscritos na sala de updates
func (h *Hub) ClientCounts() (connected int, subscribed int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), len(h.rooms[RoomUpdates])
}
