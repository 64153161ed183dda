package domain

import "time"

type ConversationStatus string

const (
	ConversationOpen   ConversationStatus = "open"
	ConversationClosed ConversationStatus = "closed"
)

// Conversation agrupa mensagens de um contato. LastMessageAt e MessageCount
// são contadores desnormalizados, atualizados de forma oportunista (não
// transacional) durante a ingestão.
type Conversation struct {
	ID            string             `json:"id"`
	ContactID     string             `json:"contact_id"`
	Status        ConversationStatus `json:"status"`
	LastMessageAt *time.Time         `json:"last_message_at,omitempty"`
	MessageCount  int                `json:"message_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ConversationFilters filtra a listagem de conversas
type ConversationFilters struct {
	ContactID string
	Status    ConversationStatus
	Limit     int
	Offset    int
}
