package googleads

import (
	"fmt"
	"strconv"
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/gadsclient"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Integrator expõe as consultas do Google Ads na granularidade que o painel
// consome
type Integrator interface {
	GetAccountMetrics(account *domain.AdAccount, filters *domain.MetricFilters) (*domain.AccountMetrics, error)
	GetCampaigns(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.Campaign, error)
	GetKeywords(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.Keyword, error)
	GetGeographic(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.GeographicEntry, error)
	GetPerformanceSeries(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.PerformancePoint, error)
	RefreshAccountToken(account *domain.AdAccount) error
	EnsureValidToken(account *domain.AdAccount) error
}

type GoogleAdsIntegrator struct {
	cfg    *config.Config
	Client gadsclient.Client
}

func New(cfg *config.Config, client gadsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

const metricsSelect = "metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, metrics.conversions_value"

// dateRange monta a cláusula de período. Filtros nulos ou incompletos caem
// na janela padrão (sincronização chama sem filtros)
func dateRange(filters *domain.MetricFilters) string {
	if filters == nil {
		filters = &domain.MetricFilters{}
	}
	filters.Normalize(time.Now())

	return fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'",
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)
}

// GetAccountMetrics consulta os totais da conta no período e deriva as taxas
func (s *GoogleAdsIntegrator) GetAccountMetrics(account *domain.AdAccount, filters *domain.MetricFilters) (*domain.AccountMetrics, error) {
	query := fmt.Sprintf("SELECT %s FROM customer WHERE %s", metricsSelect, dateRange(filters))

	rows, err := s.Client.Search(account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"customer_id": account.CustomerID,
			"error":       err.Error(),
		}).Error("googleads: failed to get account metrics from API")
		return nil, err
	}

	metrics := &domain.AccountMetrics{}
	for i := range rows {
		metrics.Add(FactoryMetrics(rows[i].Metrics))
	}
	metrics.DeriveRatios()

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"customer_id": account.CustomerID,
	}).Debug("googleads: successfully retrieved account metrics")

	return metrics, nil
}

// GetCampaigns consulta as campanhas da conta com as métricas do período
func (s *GoogleAdsIntegrator) GetCampaigns(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.Campaign, error) {
	query := fmt.Sprintf(
		"SELECT campaign.id, campaign.name, campaign.status, campaign_budget.amount_micros, %s FROM campaign WHERE %s AND campaign.status != 'REMOVED'",
		metricsSelect, dateRange(filters),
	)

	rows, err := s.Client.Search(account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("googleads: failed to get campaigns from API")
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if row.Campaign == nil {
			continue
		}

		metrics := FactoryMetrics(row.Metrics)
		metrics.DeriveRatios()

		var budget float64
		if row.CampaignBudget != nil {
			budget = parseMicros(row.CampaignBudget.AmountMicros, "campaign_budget")
		}

		campaigns = append(campaigns, &domain.Campaign{
			AccountID:  account.ID,
			ExternalID: row.Campaign.ID,
			Name:       row.Campaign.Name,
			Status:     domain.CampaignStatus(row.Campaign.Status),
			Budget:     budget,
			Metrics:    metrics,
		})
	}

	return campaigns, nil
}

// GetKeywords consulta as palavras-chave da conta com as métricas do período
func (s *GoogleAdsIntegrator) GetKeywords(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.Keyword, error) {
	query := fmt.Sprintf(
		"SELECT ad_group_criterion.criterion_id, ad_group_criterion.keyword.text, ad_group_criterion.keyword.match_type, campaign.id, campaign.name, %s FROM keyword_view WHERE %s",
		metricsSelect, dateRange(filters),
	)

	rows, err := s.Client.Search(account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("googleads: failed to get keywords from API")
		return nil, err
	}

	keywords := make([]*domain.Keyword, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if row.AdGroupCriterion == nil || row.AdGroupCriterion.Keyword == nil {
			continue
		}

		metrics := FactoryMetrics(row.Metrics)
		metrics.DeriveRatios()

		keyword := &domain.Keyword{
			ExternalID: row.AdGroupCriterion.CriterionID,
			Text:       row.AdGroupCriterion.Keyword.Text,
			MatchType:  row.AdGroupCriterion.Keyword.MatchType,
			Metrics:    metrics,
		}

		if row.Campaign != nil {
			keyword.CampaignID = row.Campaign.ID
			keyword.CampaignName = row.Campaign.Name
		}

		keywords = append(keywords, keyword)
	}

	return keywords, nil
}

// GetGeographic consulta as métricas agrupadas por localização
func (s *GoogleAdsIntegrator) GetGeographic(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.GeographicEntry, error) {
	query := fmt.Sprintf(
		"SELECT geographic_view.country_criterion_id, geographic_view.location_type, segments.geo_target_city, %s FROM geographic_view WHERE %s",
		metricsSelect, dateRange(filters),
	)

	rows, err := s.Client.Search(account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("googleads: failed to get geographic view from API")
		return nil, err
	}

	entries := make([]*domain.GeographicEntry, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if row.GeographicView == nil {
			continue
		}

		metrics := FactoryMetrics(row.Metrics)
		metrics.DeriveRatios()

		entry := &domain.GeographicEntry{
			LocationID:  row.GeographicView.CountryCriterionID,
			CountryCode: row.GeographicView.CountryCriterionID,
			Metrics:     metrics,
		}

		if row.Segments != nil {
			entry.LocationName = row.Segments.GeoTargetCity
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// GetPerformanceSeries consulta os totais diários da conta no período,
// ordenados por data
func (s *GoogleAdsIntegrator) GetPerformanceSeries(account *domain.AdAccount, filters *domain.MetricFilters) ([]*domain.PerformancePoint, error) {
	query := fmt.Sprintf(
		"SELECT segments.date, %s FROM customer WHERE %s ORDER BY segments.date",
		metricsSelect, dateRange(filters),
	)

	rows, err := s.Client.Search(account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("googleads: failed to get performance series from API")
		return nil, err
	}

	points := make([]*domain.PerformancePoint, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if row.Segments == nil {
			continue
		}

		metrics := FactoryMetrics(row.Metrics)
		metrics.DeriveRatios()

		points = append(points, &domain.PerformancePoint{
			Date:    row.Segments.Date,
			Metrics: metrics,
		})
	}

	return points, nil
}

// RefreshAccountToken força a renovação do access token da conta. Usado pela
// job de renovação periódica
func (s *GoogleAdsIntegrator) RefreshAccountToken(account *domain.AdAccount) error {
	return s.Client.RefreshToken(account)
}

// EnsureValidToken renova o token da conta apenas quando necessário
func (s *GoogleAdsIntegrator) EnsureValidToken(account *domain.AdAccount) error {
	return s.Client.EnsureValidToken(account)
}

// FactoryMetrics converte as métricas do formato wire da API, com inteiros
// serializados como string e custo em micros, para o formato do painel
func FactoryMetrics(wire *googledomain.Metrics) *domain.AccountMetrics {
	metrics := &domain.AccountMetrics{}
	if wire == nil {
		return metrics
	}

	impressions, err := strconv.ParseInt(wire.Impressions, 10, 64)
	if err != nil && wire.Impressions != "" {
		logrus.WithFields(logrus.Fields{
			"impressions_value": wire.Impressions,
			"error":             err.Error(),
		}).Warn("googleads: error converting impressions to integer")
	}

	clicks, err := strconv.ParseInt(wire.Clicks, 10, 64)
	if err != nil && wire.Clicks != "" {
		logrus.WithFields(logrus.Fields{
			"clicks_value": wire.Clicks,
			"error":        err.Error(),
		}).Warn("googleads: error converting clicks to integer")
	}

	metrics.Impressions = impressions
	metrics.Clicks = clicks
	metrics.Cost = parseMicros(wire.CostMicros, "cost")
	metrics.Conversions = wire.Conversions
	metrics.ConversionValue = wire.ConversionsValue

	return metrics
}

func parseMicros(value, field string) float64 {
	if value == "" {
		return 0
	}

	micros, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("googleads: error converting micros to integer")
		return 0
	}

	return utils.MicrosToCurrency(micros)
}
