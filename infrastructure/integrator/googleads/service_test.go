package googleads

import (
	"testing"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFactoryMetrics(t *testing.T) {
	wire := &googledomain.Metrics{
		Impressions:      "1000",
		Clicks:           "50",
		CostMicros:       "12500000",
		Conversions:      4,
		ConversionsValue: 250,
	}

	metrics := FactoryMetrics(wire)

	assert.Equal(t, int64(1000), metrics.Impressions)
	assert.Equal(t, int64(50), metrics.Clicks)
	assert.Equal(t, 12.5, metrics.Cost)
	assert.Equal(t, 4.0, metrics.Conversions)
	assert.Equal(t, 250.0, metrics.ConversionValue)
}

func TestFactoryMetrics_NilWire(t *testing.T) {
	metrics := FactoryMetrics(nil)

	assert.Equal(t, int64(0), metrics.Impressions)
	assert.Equal(t, 0.0, metrics.Cost)
}

func TestFactoryMetrics_InvalidNumbers(t *testing.T) {
	wire := &googledomain.Metrics{
		Impressions: "abc",
		Clicks:      "",
		CostMicros:  "not-a-number",
	}

	metrics := FactoryMetrics(wire)

	assert.Equal(t, int64(0), metrics.Impressions)
	assert.Equal(t, int64(0), metrics.Clicks)
	assert.Equal(t, 0.0, metrics.Cost)
}

type stubSearchClient struct {
	queries []string
	rows    []googledomain.SearchRow
}

func (c *stubSearchClient) Search(account *domain.AdAccount, query string) ([]googledomain.SearchRow, error) {
	c.queries = append(c.queries, query)
	return c.rows, nil
}

func (c *stubSearchClient) RefreshToken(account *domain.AdAccount) error     { return nil }
func (c *stubSearchClient) EnsureValidToken(account *domain.AdAccount) error { return nil }

func TestGetCampaigns_NilFilters(t *testing.T) {
	client := &stubSearchClient{
		rows: []googledomain.SearchRow{
			{
				Campaign: &googledomain.Campaign{ID: "111", Name: "Campanha", Status: "ENABLED"},
				Metrics:  &googledomain.Metrics{Impressions: "10", Clicks: "1"},
			},
		},
	}

	integrator := New(&config.Config{}, client)

	// A sincronização chama sem filtros: a consulta deve usar a janela padrão
	campaigns, err := integrator.GetCampaigns(&domain.AdAccount{ID: "ACC001", CustomerID: "1234567890"}, nil)

	assert.NoError(t, err)
	assert.Len(t, campaigns, 1)
	assert.Equal(t, "111", campaigns[0].ExternalID)

	assert.Len(t, client.queries, 1)
	assert.Contains(t, client.queries[0], "segments.date BETWEEN")
	assert.NotContains(t, client.queries[0], "0001-01-01")
}

func TestGetAccountMetrics_NilFilters(t *testing.T) {
	client := &stubSearchClient{
		rows: []googledomain.SearchRow{
			{Metrics: &googledomain.Metrics{Impressions: "100", Clicks: "5"}},
		},
	}

	integrator := New(&config.Config{}, client)

	metrics, err := integrator.GetAccountMetrics(&domain.AdAccount{ID: "ACC001", CustomerID: "1234567890"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), metrics.Impressions)
	assert.NotContains(t, client.queries[0], "0001-01-01")
}
