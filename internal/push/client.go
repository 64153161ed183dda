package push

import (
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBufferSize = 256
)

// TokenValidator valida o JWT enviado no evento authenticate. Implementado
// pelo usecase de autenticação.
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// UmblerDataProvider responde ao request_umbler_data com o estado atual do
// painel. Implementado pelo usecase de ingestão.
type UmblerDataProvider interface {
	ListContacts(filters *domain.ContactFilters) ([]*domain.Contact, error)
	ListConversations(filters *domain.ConversationFilters) ([]*domain.Conversation, error)
	ListMessages(filters *domain.MessageFilters) ([]*domain.Message, error)
	Health() *domain.UmblerHealth
}

// Client é uma conexão websocket registrada no hub
type Client struct {
	ID string

	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	validator TokenValidator
	provider  UmblerDataProvider

	mu     sync.Mutex
	claims *domain.Claims

	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, validator TokenValidator, provider UmblerDataProvider) *Client {
	return &Client{
		ID:        uuid.NewString(),
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		validator: validator,
		provider:  provider,
	}
}

func (c *Client) authenticatedClaims() *domain.Claims {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.claims
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("client_id", c.ID).Debug("push: unexpected close")
			}
			return
		}

		event := &inboundEvent{}
		if err := json.Unmarshal(payload, event); err != nil {
			c.sendError("payload inválido")
			continue
		}

		c.dispatch(event)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	// O canal send nunca é fechado; o pump encerra quando a conexão fecha e a
	// escrita (ou o ping) falha
	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) dispatch(event *inboundEvent) {
	switch event.Type {
	case EventAuthenticate:
		c.handleAuthenticate(event.token())
	case EventSubscribeUpdates:
		if !c.requireAuth() {
			return
		}
		c.hub.join(RoomUpdates, c)
		logrus.WithField("client_id", c.ID).Info("push: client subscribed to updates")
	case EventUnsubscribeUpdates:
		c.hub.leave(RoomUpdates, c)
	case EventRequestUmblerData:
		if !c.requireAuth() {
			return
		}
		c.handleUmblerData()
	default:
		c.sendError("tipo de evento desconhecido: " + event.Type)
	}
}

func (c *Client) handleAuthenticate(token string) {
	if token == "" {
		c.sendError("token não informado")
		return
	}

	claims, err := c.validator.ValidateToken(token)
	if err != nil {
		logrus.WithError(err).WithField("client_id", c.ID).Warn("push: authentication failed")
		c.sendError("token inválido ou expirado")
		return
	}

	c.mu.Lock()
	c.claims = claims
	c.mu.Unlock()

	c.sendEvent(&Event{
		Type: EventAuthenticated,
		Data: map[string]any{
			"user_id":   claims.UserID,
			"user_name": claims.UserName,
		},
	})
}

func (c *Client) handleUmblerData() {
	contacts, err := c.provider.ListContacts(&domain.ContactFilters{Limit: 100})
	if err != nil {
		logrus.WithError(err).Error("push: failed to list contacts for umbler_data")
		c.sendError("erro ao carregar contatos")
		return
	}

	conversations, err := c.provider.ListConversations(&domain.ConversationFilters{Limit: 100})
	if err != nil {
		logrus.WithError(err).Error("push: failed to list conversations for umbler_data")
		c.sendError("erro ao carregar conversas")
		return
	}

	messages, err := c.provider.ListMessages(&domain.MessageFilters{Limit: 100})
	if err != nil {
		logrus.WithError(err).Error("push: failed to list messages for umbler_data")
		c.sendError("erro ao carregar mensagens")
		return
	}

	c.sendEvent(&Event{
		Type: EventUmblerData,
		Data: map[string]any{
			"contacts":      contacts,
			"conversations": conversations,
			"messages":      messages,
			"health":        c.provider.Health(),
		},
	})
}

func (c *Client) requireAuth() bool {
	if c.authenticatedClaims() != nil {
		return true
	}
	c.sendError("autenticação necessária")
	return false
}

func (c *Client) sendEvent(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("push: failed to marshal event")
		return
	}

	select {
	case c.send <- payload:
	default:
		logrus.WithField("client_id", c.ID).Warn("push: send buffer full, dropping client")
		go c.Close()
	}
}

func (c *Client) sendError(message string) {
	c.sendEvent(&Event{
		Type: EventError,
		Data: map[string]any{"message": message},
	})
}

// Close remove o cliente do hub e encerra a conexão. Idempotente.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
