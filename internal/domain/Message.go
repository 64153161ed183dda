package domain

import "time"

type MessageDirection string

const (
	MessageInbound  MessageDirection = "inbound"
	MessageOutbound MessageDirection = "outbound"
)

type MessageStatus string

const (
	MessageStatusReceived  MessageStatus = "received"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusFailed    MessageStatus = "failed"
)

// ValidMessageStatus verifica se o status informado é conhecido
func ValidMessageStatus(s MessageStatus) bool {
	switch s {
	case MessageStatusReceived, MessageStatusSent, MessageStatusDelivered,
		MessageStatusRead, MessageStatusFailed:
		return true
	}
	return false
}

// Message é uma mensagem do painel Umbler. Na prática é append-only:
// atualizações mudam apenas o status.
type Message struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversation_id"`
	ContactID      string           `json:"contact_id"`
	Content        string           `json:"content"`
	Direction      MessageDirection `json:"direction"`
	Status         MessageStatus    `json:"status"`
	Timestamp      time.Time        `json:"timestamp"`
	Metadata       map[string]any   `json:"metadata,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// MessageFilters filtra a listagem de mensagens
type MessageFilters struct {
	ConversationID string
	ContactID      string
	Direction      MessageDirection
	Status         MessageStatus
	Limit          int
	Offset         int
}
