package ingesting

import (
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"
)

// AuditLog é o log de auditoria em memória da ingestão. Buffer circular de
// capacidade fixa: quando enche, a entrada mais antiga é descartada. O
// conteúdo não sobrevive a reinícios, o registro durável fica nas tabelas.
type AuditLog struct {
	mu       sync.RWMutex
	entries  []*domain.AuditEntry
	start    int
	size     int
	capacity int
}

const defaultAuditLogCapacity = 1000

// NewAuditLog cria o log com a capacidade informada
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = defaultAuditLogCapacity
	}

	return &AuditLog{
		entries:  make([]*domain.AuditEntry, capacity),
		capacity: capacity,
	}
}

// Append registra uma entrada, descartando a mais antiga quando o buffer
// está cheio
func (l *AuditLog) Append(kind domain.AuditEntryKind, eventType domain.WebhookEventType, eventID, message string) {
	id, err := utils.GenerateID()
	if err != nil {
		id = ""
	}

	entry := &domain.AuditEntry{
		ID:         id,
		Kind:       kind,
		EventType:  eventType,
		EventID:    eventID,
		Message:    message,
		ReceivedAt: time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size < l.capacity {
		l.entries[(l.start+l.size)%l.capacity] = entry
		l.size++
		return
	}

	// Cheio: sobrescreve a posição mais antiga e avança o início
	l.entries[l.start] = entry
	l.start = (l.start + 1) % l.capacity
}

// Entries retorna as entradas em ordem de chegada, da mais antiga para a
// mais recente
func (l *AuditLog) Entries() []*domain.AuditEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.AuditEntry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.entries[(l.start+i)%l.capacity]
	}
	return out
}

// TrimBefore descarta entradas recebidas antes do instante de corte e
// retorna quantas foram removidas. Como o buffer guarda em ordem de chegada,
// basta avançar o início.
func (l *AuditLog) TrimBefore(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for l.size > 0 {
		oldest := l.entries[l.start]
		if !oldest.ReceivedAt.Before(cutoff) {
			break
		}

		l.entries[l.start] = nil
		l.start = (l.start + 1) % l.capacity
		l.size--
		removed++
	}

	return removed
}

// Size retorna o número de entradas atualmente no buffer
func (l *AuditLog) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Capacity retorna a capacidade configurada do buffer
func (l *AuditLog) Capacity() int {
	return l.capacity
}
