package domain

import "time"

// WebhookEventType identifica o tipo de evento entregue pelo provedor
type WebhookEventType string

const (
	WebhookEventMessage      WebhookEventType = "message"
	WebhookEventContact      WebhookEventType = "contact"
	WebhookEventConversation WebhookEventType = "conversation"
)

// WebhookPayload é o corpo bruto entregue pelo Umbler. O provedor varia o
// nome de alguns campos entre versões do webhook, por isso os aliases são
// resolvidos na normalização e não aqui.
type WebhookPayload struct {
	Type      string         `json:"type"`
	EventType string         `json:"event_type"` // alias de type em payloads antigos
	EventID   string         `json:"event_id"`
	Sequence  int64          `json:"sequence"`
	Timestamp *time.Time     `json:"timestamp"`
	Data      map[string]any `json:"data"`
	Payload   map[string]any `json:"payload"` // alias de data em payloads antigos
}

// NormalizedEvent é o resultado da normalização de um webhook: tipo resolvido
// e entidade alvo já convertida para o modelo do painel
type NormalizedEvent struct {
	Type         WebhookEventType
	EventID      string
	Sequence     int64
	ReceivedAt   time.Time
	Contact      *Contact
	Message      *Message
	Conversation *Conversation
}

// AuditEntryKind distingue entradas normais de entradas de erro no log de
// auditoria
type AuditEntryKind string

const (
	AuditKindEvent AuditEntryKind = "event"
	AuditKindError AuditEntryKind = "error"
)

// AuditEntry é uma entrada do log de auditoria em memória da ingestão
type AuditEntry struct {
	ID         string           `json:"id"`
	Kind       AuditEntryKind   `json:"kind"`
	EventType  WebhookEventType `json:"event_type"`
	EventID    string           `json:"event_id,omitempty"`
	Message    string           `json:"message"`
	ReceivedAt time.Time        `json:"received_at"`
}

// UmblerHealth é a resposta do endpoint de saúde do painel Umbler
type UmblerHealth struct {
	Status            string     `json:"status"`
	AuditLogSize      int        `json:"audit_log_size"`
	AuditLogCapacity  int        `json:"audit_log_capacity"`
	EventsProcessed   int64      `json:"events_processed"`
	EventsFailed      int64      `json:"events_failed"`
	LastEventAt       *time.Time `json:"last_event_at,omitempty"`
	ConnectedClients  int        `json:"connected_clients"`
	SubscribedClients int        `json:"subscribed_clients"`
}
