package gadsclient

import (
	"testing"
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/stretchr/testify/assert"
)

func TestSearchCache_GetAfterSet(t *testing.T) {
	cache := newSearchCache(5 * time.Minute)

	rows := []googledomain.SearchRow{
		{Campaign: &googledomain.Campaign{ID: "123", Name: "Campanha Verão"}},
	}

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", rows)

	got, ok := cache.Get("1234567890", "SELECT campaign.id FROM campaign")
	assert.True(t, ok)
	assert.Len(t, got, 1)
	assert.Equal(t, "123", got[0].Campaign.ID)
}

func TestSearchCache_MissOnDifferentQuery(t *testing.T) {
	cache := newSearchCache(5 * time.Minute)

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", nil)

	_, ok := cache.Get("1234567890", "SELECT metrics.clicks FROM customer")
	assert.False(t, ok)
}

func TestSearchCache_MissOnDifferentCustomer(t *testing.T) {
	cache := newSearchCache(5 * time.Minute)

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", nil)

	_, ok := cache.Get("0987654321", "SELECT campaign.id FROM campaign")
	assert.False(t, ok)
}

func TestSearchCache_ExpiresAfterTTL(t *testing.T) {
	cache := newSearchCache(5 * time.Minute)

	now := time.Now()
	cache.nowFn = func() time.Time { return now }

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", []googledomain.SearchRow{{}})

	_, ok := cache.Get("1234567890", "SELECT campaign.id FROM campaign")
	assert.True(t, ok)

	// Avança o relógio além do TTL
	cache.nowFn = func() time.Time { return now.Add(5*time.Minute + time.Second) }

	_, ok = cache.Get("1234567890", "SELECT campaign.id FROM campaign")
	assert.False(t, ok)
}

func TestSearchCache_DisabledWithZeroTTL(t *testing.T) {
	cache := newSearchCache(0)

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", []googledomain.SearchRow{{}})

	_, ok := cache.Get("1234567890", "SELECT campaign.id FROM campaign")
	assert.False(t, ok)
}

func TestSearchCache_Invalidate(t *testing.T) {
	cache := newSearchCache(5 * time.Minute)

	cache.Set("1234567890", "SELECT campaign.id FROM campaign", []googledomain.SearchRow{{}})
	cache.Set("0987654321", "SELECT campaign.id FROM campaign", []googledomain.SearchRow{{}})

	cache.Invalidate("1234567890")

	_, ok := cache.Get("1234567890", "SELECT campaign.id FROM campaign")
	assert.False(t, ok)

	_, ok = cache.Get("0987654321", "SELECT campaign.id FROM campaign")
	assert.True(t, ok)
}
