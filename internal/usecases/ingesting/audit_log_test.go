package ingesting

import (
	"fmt"
	"testing"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuditLog_AppendAndOrder(t *testing.T) {
	log := NewAuditLog(10)

	log.Append(domain.AuditKindEvent, domain.WebhookEventMessage, "EV1", "mensagem recebida")
	log.Append(domain.AuditKindEvent, domain.WebhookEventContact, "EV2", "contato atualizado")
	log.Append(domain.AuditKindError, domain.WebhookEventMessage, "EV3", "payload inválido")

	entries := log.Entries()

	assert.Len(t, entries, 3)
	assert.Equal(t, "EV1", entries[0].EventID)
	assert.Equal(t, "EV2", entries[1].EventID)
	assert.Equal(t, "EV3", entries[2].EventID)
	assert.Equal(t, domain.AuditKindError, entries[2].Kind)
}

func TestAuditLog_EvictsOldestWhenFull(t *testing.T) {
	capacity := 1000
	log := NewAuditLog(capacity)

	for i := 1; i <= capacity; i++ {
		log.Append(domain.AuditKindEvent, domain.WebhookEventMessage, fmt.Sprintf("EV%d", i), "")
	}

	assert.Equal(t, capacity, log.Size())

	// A entrada 1001 descarta a mais antiga (EV1)
	log.Append(domain.AuditKindEvent, domain.WebhookEventMessage, "EV1001", "")

	entries := log.Entries()
	assert.Equal(t, capacity, log.Size())
	assert.Equal(t, "EV2", entries[0].EventID)
	assert.Equal(t, "EV1001", entries[capacity-1].EventID)
}

func TestAuditLog_WrapsKeepingArrivalOrder(t *testing.T) {
	log := NewAuditLog(3)

	for i := 1; i <= 5; i++ {
		log.Append(domain.AuditKindEvent, domain.WebhookEventContact, fmt.Sprintf("EV%d", i), "")
	}

	entries := log.Entries()

	assert.Len(t, entries, 3)
	assert.Equal(t, "EV3", entries[0].EventID)
	assert.Equal(t, "EV4", entries[1].EventID)
	assert.Equal(t, "EV5", entries[2].EventID)
}

func TestAuditLog_DefaultCapacity(t *testing.T) {
	log := NewAuditLog(0)
	assert.Equal(t, 1000, log.Capacity())
}

func TestAuditLog_TrimBefore(t *testing.T) {
	log := NewAuditLog(10)

	for i := 1; i <= 4; i++ {
		log.Append(domain.AuditKindEvent, domain.WebhookEventMessage, fmt.Sprintf("EV%d", i), "")
	}

	removed := log.TrimBefore(time.Now().Add(-time.Hour))
	assert.Equal(t, 0, removed)
	assert.Equal(t, 4, log.Size())

	removed = log.TrimBefore(time.Now().Add(time.Hour))
	assert.Equal(t, 4, removed)
	assert.Equal(t, 0, log.Size())
	assert.Empty(t, log.Entries())

	// O buffer continua utilizável depois do corte
	log.Append(domain.AuditKindEvent, domain.WebhookEventContact, "EV5", "")
	entries := log.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "EV5", entries[0].EventID)
}
