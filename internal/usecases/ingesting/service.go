package ingesting

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Broadcaster entrega eventos normalizados aos clientes websocket inscritos.
// Implementado pelo hub de push; a ingestão nunca bloqueia na entrega.
type Broadcaster interface {
	BroadcastUmblerUpdate(event *domain.NormalizedEvent)
	ClientCounts() (connected int, subscribed int)
}

// Ingestor processa webhooks do Umbler e expõe o CRUD das entidades do painel
type Ingestor interface {
	ProcessWebhook(payload *domain.WebhookPayload) (*domain.NormalizedEvent, error)

	GetContact(contactID string) (*domain.Contact, error)
	ListContacts(filters *domain.ContactFilters) ([]*domain.Contact, error)
	SaveContact(contact *domain.Contact) error
	DeleteContact(contactID string) error

	GetMessage(messageID string) (*domain.Message, error)
	ListMessages(filters *domain.MessageFilters) ([]*domain.Message, error)
	SaveMessage(message *domain.Message) error
	UpdateMessageStatus(messageID string, status domain.MessageStatus) error

	GetConversation(conversationID string) (*domain.Conversation, error)
	ListConversations(filters *domain.ConversationFilters) ([]*domain.Conversation, error)
	UpdateConversationStatus(conversationID string, status domain.ConversationStatus) error

	AuditEntries() []*domain.AuditEntry
	TrimAuditBefore(cutoff time.Time) int
	Health() *domain.UmblerHealth
}

type Service struct {
	contactRepo      repository.ContactRepository
	messageRepo      repository.MessageRepository
	conversationRepo repository.ConversationRepository
	auditLog         *AuditLog
	broadcaster      Broadcaster

	eventsProcessed atomic.Int64
	eventsFailed    atomic.Int64

	mu          sync.Mutex
	lastEventAt *time.Time

	nowFn func() time.Time
}

func NewService(
	contactRepo repository.ContactRepository,
	messageRepo repository.MessageRepository,
	conversationRepo repository.ConversationRepository,
	broadcaster Broadcaster,
	cfg *config.Config,
) *Service {
	return &Service{
		contactRepo:      contactRepo,
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		auditLog:         NewAuditLog(cfg.Umbler.AuditLogCapacity),
		broadcaster:      broadcaster,
		nowFn:            time.Now,
	}
}

// ProcessWebhook executa o pipeline de ingestão: normaliza o payload,
// persiste a entidade, registra no log de auditoria e repassa o evento aos
// clientes inscritos. Falhas em qualquer etapa anterior à auditoria geram uma
// entrada de erro e interrompem o pipeline.
func (s *Service) ProcessWebhook(payload *domain.WebhookPayload) (*domain.NormalizedEvent, error) {
	receivedAt := s.nowFn()

	event, err := Normalize(payload, receivedAt)
	if err != nil {
		s.recordFailure(payload, err)
		return nil, err
	}

	if err := s.persist(event); err != nil {
		s.recordFailure(payload, err)
		return nil, err
	}

	s.auditLog.Append(domain.AuditKindEvent, event.Type, event.EventID, s.describe(event))

	s.eventsProcessed.Add(1)
	s.mu.Lock()
	s.lastEventAt = &receivedAt
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"event_type": event.Type,
		"event_id":   event.EventID,
	}).Info("umbler webhook: event processed")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastUmblerUpdate(event)
	}

	return event, nil
}

func (s *Service) persist(event *domain.NormalizedEvent) error {
	switch event.Type {
	case domain.WebhookEventContact:
		return errors.Wrap(s.contactRepo.Upsert(event.Contact), "erro ao persistir contato do webhook")
	case domain.WebhookEventConversation:
		return errors.Wrap(s.conversationRepo.Upsert(event.Conversation), "erro ao persistir conversa do webhook")
	case domain.WebhookEventMessage:
		if err := s.messageRepo.Upsert(event.Message); err != nil {
			return errors.Wrap(err, "erro ao persistir mensagem do webhook")
		}

		// Contadores da conversa são oportunistas: a mensagem já foi
		// persistida, então falha aqui só gera log
		if event.Message.ConversationID != "" {
			if err := s.conversationRepo.BumpMessageStats(event.Message.ConversationID, event.Message.Timestamp); err != nil {
				logrus.WithError(err).WithField("conversation_id", event.Message.ConversationID).
					Warn("umbler webhook: failed to bump conversation stats")
			}
		}

		return nil
	}

	return errors.Wrapf(ErrUnknownEventType, "tipo %q", event.Type)
}

func (s *Service) recordFailure(payload *domain.WebhookPayload, err error) {
	s.eventsFailed.Add(1)

	eventType := payload.Type
	if eventType == "" {
		eventType = payload.EventType
	}

	s.auditLog.Append(domain.AuditKindError, domain.WebhookEventType(eventType), payload.EventID, err.Error())

	logrus.WithError(err).WithFields(logrus.Fields{
		"event_type": eventType,
		"event_id":   payload.EventID,
	}).Error("umbler webhook: event rejected")
}

func (s *Service) describe(event *domain.NormalizedEvent) string {
	switch event.Type {
	case domain.WebhookEventContact:
		return fmt.Sprintf("contato %s atualizado", event.Contact.ID)
	case domain.WebhookEventMessage:
		return fmt.Sprintf("mensagem %s (%s) na conversa %s", event.Message.ID, event.Message.Direction, event.Message.ConversationID)
	case domain.WebhookEventConversation:
		return fmt.Sprintf("conversa %s %s", event.Conversation.ID, event.Conversation.Status)
	}
	return string(event.Type)
}

func (s *Service) GetContact(contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, repository.ErrContactNotFound
	}
	return contact, nil
}

func (s *Service) ListContacts(filters *domain.ContactFilters) ([]*domain.Contact, error) {
	return s.contactRepo.List(filters)
}

// SaveContact insere ou atualiza um contato manualmente, fora do fluxo de
// webhook. Contatos salvos à mão não carregam sequence.
func (s *Service) SaveContact(contact *domain.Contact) error {
	if contact.ID == "" {
		return ErrMissingEntityID
	}

	if contact.Status == "" {
		contact.Status = domain.ContactStatusActive
	}
	if !domain.ValidContactStatus(contact.Status) {
		return fmt.Errorf("status de contato inválido: %s", contact.Status)
	}

	now := s.nowFn()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	return s.contactRepo.Upsert(contact)
}

func (s *Service) DeleteContact(contactID string) error {
	return s.contactRepo.Delete(contactID)
}

func (s *Service) GetMessage(messageID string) (*domain.Message, error) {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, repository.ErrMessageNotFound
	}
	return message, nil
}

func (s *Service) ListMessages(filters *domain.MessageFilters) ([]*domain.Message, error) {
	return s.messageRepo.List(filters)
}

// SaveMessage insere uma mensagem manualmente, fora do fluxo de webhook
func (s *Service) SaveMessage(message *domain.Message) error {
	if message.ID == "" {
		return ErrMissingEntityID
	}

	if message.Direction == "" {
		message.Direction = domain.MessageOutbound
	}
	if message.Status == "" {
		message.Status = domain.MessageStatusSent
	}
	if !domain.ValidMessageStatus(message.Status) {
		return fmt.Errorf("status de mensagem inválido: %s", message.Status)
	}
	now := s.nowFn()
	if message.Timestamp.IsZero() {
		message.Timestamp = now
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = now
	}
	message.UpdatedAt = now

	if err := s.messageRepo.Upsert(message); err != nil {
		return err
	}

	if message.ConversationID != "" {
		if err := s.conversationRepo.BumpMessageStats(message.ConversationID, message.Timestamp); err != nil {
			logrus.WithError(err).WithField("conversation_id", message.ConversationID).
				Warn("umbler: failed to bump conversation stats")
		}
	}

	return nil
}

func (s *Service) UpdateMessageStatus(messageID string, status domain.MessageStatus) error {
	if !domain.ValidMessageStatus(status) {
		return fmt.Errorf("status de mensagem inválido: %s", status)
	}

	return s.messageRepo.UpdateStatus(messageID, status)
}

func (s *Service) GetConversation(conversationID string) (*domain.Conversation, error) {
	conversation, err := s.conversationRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, repository.ErrConversationNotFound
	}
	return conversation, nil
}

func (s *Service) ListConversations(filters *domain.ConversationFilters) ([]*domain.Conversation, error) {
	return s.conversationRepo.List(filters)
}

func (s *Service) UpdateConversationStatus(conversationID string, status domain.ConversationStatus) error {
	if status != domain.ConversationOpen && status != domain.ConversationClosed {
		return fmt.Errorf("status de conversa inválido: %s", status)
	}

	return s.conversationRepo.UpdateStatus(conversationID, status)
}

// AuditEntries devolve as entradas do log de auditoria em ordem de chegada
func (s *Service) AuditEntries() []*domain.AuditEntry {
	return s.auditLog.Entries()
}

// TrimAuditBefore descarta entradas de auditoria anteriores ao corte. Usado
// pelo job de limpeza de logs.
func (s *Service) TrimAuditBefore(cutoff time.Time) int {
	return s.auditLog.TrimBefore(cutoff)
}

func (s *Service) Health() *domain.UmblerHealth {
	s.mu.Lock()
	lastEventAt := s.lastEventAt
	s.mu.Unlock()

	health := &domain.UmblerHealth{
		Status:           "ok",
		AuditLogSize:     s.auditLog.Size(),
		AuditLogCapacity: s.auditLog.Capacity(),
		EventsProcessed:  s.eventsProcessed.Load(),
		EventsFailed:     s.eventsFailed.Load(),
		LastEventAt:      lastEventAt,
	}

	if s.broadcaster != nil {
		health.ConnectedClients, health.SubscribedClients = s.broadcaster.ClientCounts()
	}

	return health
}
