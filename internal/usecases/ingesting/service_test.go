package ingesting

import (
	"testing"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeBroadcaster struct {
	events []*domain.NormalizedEvent
}

func (b *fakeBroadcaster) BroadcastUmblerUpdate(event *domain.NormalizedEvent) {
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) ClientCounts() (int, int) {
	return 3, 1
}

type testMocks struct {
	contactRepo      *mocks.MockContactRepository
	messageRepo      *mocks.MockMessageRepository
	conversationRepo *mocks.MockConversationRepository
	broadcaster      *fakeBroadcaster
}

func newTestService(t *testing.T, auditCapacity int) (*Service, *testMocks) {
	ctrl := gomock.NewController(t)

	m := &testMocks{
		contactRepo:      mocks.NewMockContactRepository(ctrl),
		messageRepo:      mocks.NewMockMessageRepository(ctrl),
		conversationRepo: mocks.NewMockConversationRepository(ctrl),
		broadcaster:      &fakeBroadcaster{},
	}

	service := &Service{
		contactRepo:      m.contactRepo,
		messageRepo:      m.messageRepo,
		conversationRepo: m.conversationRepo,
		auditLog:         NewAuditLog(auditCapacity),
		broadcaster:      m.broadcaster,
		nowFn:            func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	}

	return service, m
}

func TestProcessWebhook(t *testing.T) {
	testCases := []struct {
		name     string
		payload  *domain.WebhookPayload
		setup    func(m *testMocks)
		validate func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error)
	}{
		{
			name: "Should process a contact event through the full pipeline",
			payload: &domain.WebhookPayload{
				Type:     "contact",
				EventID:  "EV1",
				Sequence: 7,
				Data: map[string]any{
					"contact_id":   "C1",
					"contact_name": "Maria Souza",
					"phone_number": "+5511999990000",
				},
			},
			setup: func(m *testMocks) {
				m.contactRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(contact *domain.Contact) error {
					assert.Equal(t, "C1", contact.ID)
					assert.Equal(t, "Maria Souza", contact.Name)
					assert.Equal(t, "+5511999990000", contact.Phone)
					assert.Equal(t, domain.ContactStatusActive, contact.Status)
					assert.Equal(t, int64(7), contact.Sequence)
					return nil
				})
			},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.NoError(t, err)
				require.NotNil(t, event.Contact)
				assert.Equal(t, domain.WebhookEventContact, event.Type)

				entries := s.AuditEntries()
				require.Len(t, entries, 1)
				assert.Equal(t, domain.AuditKindEvent, entries[0].Kind)
				assert.Equal(t, "EV1", entries[0].EventID)

				require.Len(t, m.broadcaster.events, 1)
				assert.Same(t, event, m.broadcaster.events[0])
			},
		},
		{
			name: "Should persist a message and bump conversation counters",
			payload: &domain.WebhookPayload{
				EventType: "message",
				EventID:   "EV2",
				Data: map[string]any{
					"message_id": "M1",
					"chat_id":    "CONV1",
					"contact_id": "C1",
					"text":       "bom dia",
					"direction":  "inbound",
				},
			},
			setup: func(m *testMocks) {
				m.messageRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(message *domain.Message) error {
					assert.Equal(t, "M1", message.ID)
					assert.Equal(t, "CONV1", message.ConversationID)
					assert.Equal(t, "bom dia", message.Content)
					assert.Equal(t, domain.MessageStatusReceived, message.Status)
					return nil
				})
				m.conversationRepo.EXPECT().BumpMessageStats("CONV1", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.NoError(t, err)
				require.NotNil(t, event.Message)
				assert.Len(t, m.broadcaster.events, 1)
			},
		},
		{
			name: "Should still succeed when bumping conversation counters fails",
			payload: &domain.WebhookPayload{
				Type:    "message",
				EventID: "EV3",
				Data: map[string]any{
					"id":              "M2",
					"conversation_id": "CONV1",
					"content":         "oi",
				},
			},
			setup: func(m *testMocks) {
				m.messageRepo.EXPECT().Upsert(gomock.Any()).Return(nil)
				m.conversationRepo.EXPECT().BumpMessageStats("CONV1", gomock.Any()).Return(errors.New("db offline"))
			},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(1), s.eventsProcessed.Load())
				assert.Equal(t, int64(0), s.eventsFailed.Load())
			},
		},
		{
			name: "Should process a conversation event",
			payload: &domain.WebhookPayload{
				Type:    "conversation",
				EventID: "EV4",
				Payload: map[string]any{
					"conversation_id": "CONV2",
					"contact_id":      "C9",
					"state":           "closed",
				},
			},
			setup: func(m *testMocks) {
				m.conversationRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(conversation *domain.Conversation) error {
					assert.Equal(t, "CONV2", conversation.ID)
					assert.Equal(t, domain.ConversationClosed, conversation.Status)
					return nil
				})
			},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.NoError(t, err)
				require.NotNil(t, event.Conversation)
			},
		},
		{
			name: "Should reject an unknown event type with an error audit entry",
			payload: &domain.WebhookPayload{
				Type:    "billing",
				EventID: "EV5",
				Data:    map[string]any{"id": "X"},
			},
			setup: func(m *testMocks) {},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.ErrorIs(t, err, ErrUnknownEventType)
				assert.Nil(t, event)

				entries := s.AuditEntries()
				require.Len(t, entries, 1)
				assert.Equal(t, domain.AuditKindError, entries[0].Kind)
				assert.Equal(t, int64(1), s.eventsFailed.Load())
				assert.Empty(t, m.broadcaster.events)
			},
		},
		{
			name: "Should reject a payload without data",
			payload: &domain.WebhookPayload{
				Type:    "contact",
				EventID: "EV6",
			},
			setup: func(m *testMocks) {},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.ErrorIs(t, err, ErrMissingEventData)
				assert.Empty(t, m.broadcaster.events)
			},
		},
		{
			name: "Should reject a contact without id",
			payload: &domain.WebhookPayload{
				Type: "contact",
				Data: map[string]any{"name": "sem id"},
			},
			setup: func(m *testMocks) {},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.ErrorIs(t, err, ErrMissingEntityID)
			},
		},
		{
			name: "Should record an error entry when persistence fails",
			payload: &domain.WebhookPayload{
				Type:    "contact",
				EventID: "EV7",
				Data:    map[string]any{"id": "C2"},
			},
			setup: func(m *testMocks) {
				m.contactRepo.EXPECT().Upsert(gomock.Any()).Return(errors.New("db offline"))
			},
			validate: func(t *testing.T, s *Service, m *testMocks, event *domain.NormalizedEvent, err error) {
				require.Error(t, err)
				assert.Nil(t, event)

				entries := s.AuditEntries()
				require.Len(t, entries, 1)
				assert.Equal(t, domain.AuditKindError, entries[0].Kind)
				assert.Empty(t, m.broadcaster.events)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, m := newTestService(t, 10)
			tc.setup(m)

			event, err := service.ProcessWebhook(tc.payload)

			tc.validate(t, service, m, event, err)
		})
	}
}

func TestProcessWebhookFillsDefaults(t *testing.T) {
	service, m := newTestService(t, 10)

	var persisted *domain.Message
	m.messageRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(message *domain.Message) error {
		persisted = message
		return nil
	})
	m.conversationRepo.EXPECT().BumpMessageStats("CONV1", gomock.Any()).Return(nil)

	_, err := service.ProcessWebhook(&domain.WebhookPayload{
		Type: "message",
		Data: map[string]any{
			"id":              "M3",
			"conversation_id": "CONV1",
			"content":         "sem direção nem status",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, domain.MessageInbound, persisted.Direction)
	assert.Equal(t, domain.MessageStatusReceived, persisted.Status)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), persisted.Timestamp)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), persisted.CreatedAt)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), persisted.UpdatedAt)
}

// Entidades ingeridas chegam sem timestamps de persistência: o pipeline carimba
// o recebimento para a listagem ordenada por updated_at funcionar
func TestProcessWebhookStampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("contact", func(t *testing.T) {
		service, m := newTestService(t, 10)

		m.contactRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(contact *domain.Contact) error {
			assert.Equal(t, now, contact.CreatedAt)
			assert.Equal(t, now, contact.UpdatedAt)
			return nil
		})

		_, err := service.ProcessWebhook(&domain.WebhookPayload{
			Type: "contact",
			Data: map[string]any{"id": "C1"},
		})
		require.NoError(t, err)
	})

	t.Run("conversation", func(t *testing.T) {
		service, m := newTestService(t, 10)

		m.conversationRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(conversation *domain.Conversation) error {
			assert.Equal(t, now, conversation.CreatedAt)
			assert.Equal(t, now, conversation.UpdatedAt)
			return nil
		})

		_, err := service.ProcessWebhook(&domain.WebhookPayload{
			Type: "conversation",
			Data: map[string]any{"id": "CONV1", "contact_id": "C1"},
		})
		require.NoError(t, err)
	})
}

func TestSaveContactStampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	service, m := newTestService(t, 10)

	m.contactRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(contact *domain.Contact) error {
		assert.Equal(t, now, contact.CreatedAt)
		assert.Equal(t, now, contact.UpdatedAt)
		return nil
	})

	require.NoError(t, service.SaveContact(&domain.Contact{ID: "C1", Name: "Maria"}))

	// Um contato já existente mantém o created_at original
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.contactRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(contact *domain.Contact) error {
		assert.Equal(t, created, contact.CreatedAt)
		assert.Equal(t, now, contact.UpdatedAt)
		return nil
	})

	require.NoError(t, service.SaveContact(&domain.Contact{ID: "C1", Name: "Maria", CreatedAt: created}))
}

func TestHealth(t *testing.T) {
	service, m := newTestService(t, 10)

	m.contactRepo.EXPECT().Upsert(gomock.Any()).Return(nil)

	_, err := service.ProcessWebhook(&domain.WebhookPayload{
		Type: "contact",
		Data: map[string]any{"id": "C1"},
	})
	require.NoError(t, err)

	_, err = service.ProcessWebhook(&domain.WebhookPayload{
		Type: "billing",
		Data: map[string]any{"id": "X"},
	})
	require.Error(t, err)

	health := service.Health()

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, int64(1), health.EventsProcessed)
	assert.Equal(t, int64(1), health.EventsFailed)
	assert.Equal(t, 2, health.AuditLogSize)
	assert.Equal(t, 10, health.AuditLogCapacity)
	assert.Equal(t, 3, health.ConnectedClients)
	assert.Equal(t, 1, health.SubscribedClients)
	require.NotNil(t, health.LastEventAt)
}

func TestUpdateMessageStatus(t *testing.T) {
	service, m := newTestService(t, 10)

	m.messageRepo.EXPECT().UpdateStatus("M1", domain.MessageStatusRead).Return(nil)

	require.NoError(t, service.UpdateMessageStatus("M1", domain.MessageStatusRead))

	err := service.UpdateMessageStatus("M1", domain.MessageStatus("archived"))
	assert.Error(t, err)
}
