package ingesting

import (
	"fmt"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Erros de normalização. Payloads rejeitados aqui nunca chegam ao banco
var (
	ErrUnknownEventType = errors.New("tipo de evento desconhecido")
	ErrMissingEventData = errors.New("payload sem dados do evento")
	ErrMissingEntityID  = errors.New("entidade do evento sem id")
)

// Normalize resolve os aliases de campo do webhook e converte o payload bruto
// na entidade do painel. O provedor mudou o nome de alguns campos entre
// versões do webhook, então os dois nomes são aceitos.
func Normalize(payload *domain.WebhookPayload, receivedAt time.Time) (*domain.NormalizedEvent, error) {
	eventType := payload.Type
	if eventType == "" {
		eventType = payload.EventType
	}

	data := payload.Data
	if data == nil {
		data = payload.Payload
	}
	if data == nil {
		return nil, ErrMissingEventData
	}

	event := &domain.NormalizedEvent{
		Type:       domain.WebhookEventType(eventType),
		EventID:    payload.EventID,
		Sequence:   payload.Sequence,
		ReceivedAt: receivedAt,
	}

	var err error
	switch event.Type {
	case domain.WebhookEventContact:
		event.Contact, err = normalizeContact(data, payload.Sequence, receivedAt)
	case domain.WebhookEventMessage:
		event.Message, err = normalizeMessage(data, receivedAt)
	case domain.WebhookEventConversation:
		event.Conversation, err = normalizeConversation(data, receivedAt)
	default:
		return nil, errors.Wrapf(ErrUnknownEventType, "tipo %q", eventType)
	}

	if err != nil {
		return nil, err
	}

	return event, nil
}

func normalizeContact(data map[string]any, sequence int64, receivedAt time.Time) (*domain.Contact, error) {
	canonical := withAliases(data, map[string][]string{
		"id":               {"id", "contact_id"},
		"name":             {"name", "contact_name"},
		"phone":            {"phone", "phone_number"},
		"email":            {"email"},
		"status":           {"status"},
		"tags":             {"tags"},
		"metadata":         {"metadata"},
		"last_interaction": {"last_interaction", "last_interaction_at"},
	})

	contact := &domain.Contact{}
	if err := decode(canonical, contact); err != nil {
		return nil, err
	}

	if contact.ID == "" {
		return nil, ErrMissingEntityID
	}

	if contact.Status == "" {
		contact.Status = domain.ContactStatusActive
	}
	if !domain.ValidContactStatus(contact.Status) {
		return nil, fmt.Errorf("status de contato inválido: %s", contact.Status)
	}

	if contact.LastInteraction == nil {
		contact.LastInteraction = &receivedAt
	}

	contact.Sequence = sequence

	// O webhook não carrega timestamps de persistência; sem o carimbo aqui a
	// listagem ordenada por updated_at colocaria o contato no fim
	contact.CreatedAt = receivedAt
	contact.UpdatedAt = receivedAt

	return contact, nil
}

func normalizeMessage(data map[string]any, receivedAt time.Time) (*domain.Message, error) {
	canonical := withAliases(data, map[string][]string{
		"id":              {"id", "message_id"},
		"conversation_id": {"conversation_id", "chat_id"},
		"contact_id":      {"contact_id"},
		"content":         {"content", "text", "body"},
		"direction":       {"direction"},
		"status":          {"status"},
		"timestamp":       {"timestamp", "sent_at"},
		"metadata":        {"metadata"},
	})

	message := &domain.Message{}
	if err := decode(canonical, message); err != nil {
		return nil, err
	}

	if message.ID == "" {
		return nil, ErrMissingEntityID
	}

	if message.Direction == "" {
		message.Direction = domain.MessageInbound
	}

	if message.Status == "" {
		message.Status = domain.MessageStatusReceived
	}
	if !domain.ValidMessageStatus(message.Status) {
		return nil, fmt.Errorf("status de mensagem inválido: %s", message.Status)
	}

	if message.Timestamp.IsZero() {
		message.Timestamp = receivedAt
	}

	message.CreatedAt = receivedAt
	message.UpdatedAt = receivedAt

	return message, nil
}

func normalizeConversation(data map[string]any, receivedAt time.Time) (*domain.Conversation, error) {
	canonical := withAliases(data, map[string][]string{
		"id":         {"id", "conversation_id", "chat_id"},
		"contact_id": {"contact_id"},
		"status":     {"status", "state"},
	})

	conversation := &domain.Conversation{}
	if err := decode(canonical, conversation); err != nil {
		return nil, err
	}

	if conversation.ID == "" {
		return nil, ErrMissingEntityID
	}

	if conversation.Status == "" {
		conversation.Status = domain.ConversationOpen
	}
	if conversation.Status != domain.ConversationOpen && conversation.Status != domain.ConversationClosed {
		return nil, fmt.Errorf("status de conversa inválido: %s", conversation.Status)
	}

	conversation.CreatedAt = receivedAt
	conversation.UpdatedAt = receivedAt

	return conversation, nil
}

// withAliases monta um mapa canônico: para cada campo, o primeiro alias
// presente no payload vence
func withAliases(data map[string]any, aliases map[string][]string) map[string]any {
	canonical := make(map[string]any, len(aliases))

	for field, names := range aliases {
		for _, name := range names {
			if value, ok := data[name]; ok {
				canonical[field] = value
				break
			}
		}
	}

	return canonical
}

func decode(data map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(data); err != nil {
		return errors.Wrap(err, "erro ao decodificar dados do evento")
	}

	return nil
}
