package gadsclient

import (
	"fmt"
	"sync"
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
)

// searchCache guarda respostas de consultas por um TTL curto para aliviar as
// quotas da API. A chave combina o customer ID e a consulta GAQL
type searchCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	nowFn   func() time.Time
}

type cacheEntry struct {
	rows      []googledomain.SearchRow
	expiresAt time.Time
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		nowFn:   time.Now,
	}
}

func cacheKey(customerID, query string) string {
	return fmt.Sprintf("%s|%s", customerID, query)
}

// Get retorna as linhas cacheadas, se ainda não expiraram
func (c *searchCache) Get(customerID, query string) ([]googledomain.SearchRow, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[cacheKey(customerID, query)]
	c.mu.RUnlock()

	if !ok || c.nowFn().After(entry.expiresAt) {
		return nil, false
	}

	return entry.rows, true
}

// Set armazena as linhas de uma consulta e remove entradas vencidas de
// passagem
func (c *searchCache) Set(customerID, query string, rows []googledomain.SearchRow) {
	if c.ttl <= 0 {
		return
	}

	now := c.nowFn()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	c.entries[cacheKey(customerID, query)] = cacheEntry{
		rows:      rows,
		expiresAt: now.Add(c.ttl),
	}
}

// Invalidate descarta todas as entradas de um customer
func (c *searchCache) Invalidate(customerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := customerID + "|"
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}
