package aggregating

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Aggregator consolida as métricas de todas as contas ativas para o dashboard
type Aggregator interface {
	GetAccountMetrics(accountID string, filters *domain.MetricFilters) (*domain.AccountMetrics, error)
	GetOverview(filters *domain.MetricFilters) (*domain.DashboardOverview, error)
	GetPerformance(filters *domain.MetricFilters) ([]*domain.PerformancePoint, error)
	GetTopCampaigns(limit int) ([]*domain.TopCampaign, error)
	GetAlerts() ([]*domain.Alert, error)
	GetKeywords(accountID string, filters *domain.MetricFilters) ([]*domain.Keyword, error)
	GetGeographic(accountID string, filters *domain.MetricFilters) ([]*domain.GeographicEntry, error)
}

type Service struct {
	accountRepo  repository.AccountRepository
	campaignRepo repository.CampaignRepository
	integrator   googleads.Integrator
	cfg          *config.Config
}

func NewService(
	accountRepo repository.AccountRepository,
	campaignRepo repository.CampaignRepository,
	integrator googleads.Integrator,
	cfg *config.Config,
) Aggregator {
	return &Service{
		accountRepo:  accountRepo,
		campaignRepo: campaignRepo,
		integrator:   integrator,
		cfg:          cfg,
	}
}

// GetAccountMetrics retorna as métricas de uma única conta no período
func (s *Service) GetAccountMetrics(accountID string, filters *domain.MetricFilters) (*domain.AccountMetrics, error) {
	filters.Normalize(time.Now())

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, repository.ErrAccountNotFound
	}

	metrics, err := s.integrator.GetAccountMetrics(account, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("dashboard: failed to get metrics for account")
		return nil, err
	}

	return metrics, nil
}

// GetOverview soma as métricas brutas de todas as contas ativas e deriva as
// taxas sobre os totais. Contas que falham não derrubam a consulta: entram no
// relatório de falhas parciais da resposta
func (s *Service) GetOverview(filters *domain.MetricFilters) (*domain.DashboardOverview, error) {
	filters.Normalize(time.Now())

	accounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return nil, err
	}

	total := &domain.AccountMetrics{}
	failed := make([]*domain.FailedAccount, 0)

	maxConcurrent := s.cfg.Dashboard.AggregateWorkers
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, account := range accounts {
		wg.Add(1)

		go func(acc *domain.AdAccount) {
			defer wg.Done()

			// Adquirir uma vaga no semáforo
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			metrics, err := s.integrator.GetAccountMetrics(acc, filters)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id":  acc.ID,
					"customer_id": acc.CustomerID,
					"error":       err.Error(),
				}).Error("dashboard: failed to get metrics for account, skipping")

				failed = append(failed, &domain.FailedAccount{
					AccountID:  acc.ID,
					CustomerID: acc.CustomerID,
					Error:      err.Error(),
				})
				return
			}

			total.Add(metrics)
		}(account)
	}

	wg.Wait()

	// As taxas são derivadas dos totais somados, nunca da média das taxas
	// individuais
	total.DeriveRatios()

	sort.Slice(failed, func(i, j int) bool {
		return failed[i].AccountID < failed[j].AccountID
	})

	return &domain.DashboardOverview{
		Metrics:         total,
		AccountCount:    len(accounts),
		AccountsQueried: len(accounts) - len(failed),
		FailedAccounts:  failed,
		Filters:         filters,
	}, nil
}

// GetPerformance monta a série temporal consolidada: os pontos diários de
// cada conta são somados por data
func (s *Service) GetPerformance(filters *domain.MetricFilters) ([]*domain.PerformancePoint, error) {
	filters.Normalize(time.Now())

	accounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.AccountMetrics)

	maxConcurrent := s.cfg.Dashboard.AggregateWorkers
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, account := range accounts {
		wg.Add(1)

		go func(acc *domain.AdAccount) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			points, err := s.integrator.GetPerformanceSeries(acc, filters)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id": acc.ID,
					"error":      err.Error(),
				}).Error("dashboard: failed to get performance series for account, skipping")
				return
			}

			mutex.Lock()
			defer mutex.Unlock()

			for _, point := range points {
				accumulated, ok := byDate[point.Date]
				if !ok {
					accumulated = &domain.AccountMetrics{}
					byDate[point.Date] = accumulated
				}
				accumulated.Add(point.Metrics)
			}
		}(account)
	}

	wg.Wait()

	// Preenche com zero os dias do período sem nenhum dado retornado, para a
	// série não ter buracos no gráfico
	for _, day := range utils.DaysBetween(*filters.StartDate, *filters.EndDate) {
		key := day.Format(time.DateOnly)
		if _, ok := byDate[key]; !ok {
			byDate[key] = &domain.AccountMetrics{}
		}
	}

	series := make([]*domain.PerformancePoint, 0, len(byDate))
	for date, metrics := range byDate {
		metrics.DeriveRatios()
		series = append(series, &domain.PerformancePoint{
			Date:    date,
			Metrics: metrics,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}

// GetTopCampaigns retorna as campanhas de maior investimento entre todas as
// contas, lidas do espelho local alimentado pela sincronização
func (s *Service) GetTopCampaigns(limit int) ([]*domain.TopCampaign, error) {
	if limit <= 0 {
		limit = 5
	}

	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(nil)
	if err != nil {
		return nil, err
	}

	accountNames := make(map[string]string, len(accounts))
	for _, account := range accounts {
		accountNames[account.ID] = account.Name
	}

	sort.Slice(campaigns, func(i, j int) bool {
		var costI, costJ float64
		if campaigns[i].Metrics != nil {
			costI = campaigns[i].Metrics.Cost
		}
		if campaigns[j].Metrics != nil {
			costJ = campaigns[j].Metrics.Cost
		}
		return costI > costJ
	})

	if len(campaigns) > limit {
		campaigns = campaigns[:limit]
	}

	top := make([]*domain.TopCampaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		top = append(top, &domain.TopCampaign{
			Campaign:    campaign,
			AccountID:   campaign.AccountID,
			AccountName: accountNames[campaign.AccountID],
		})
	}

	return top, nil
}

// GetAlerts verifica condições que merecem atenção do gestor de tráfego
func (s *Service) GetAlerts() ([]*domain.Alert, error) {
	accounts, err := s.accountRepo.ListAccounts(nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alerts := make([]*domain.Alert, 0)

	for _, account := range accounts {
		if account.Status == domain.AdAccountStatusDisabled {
			alerts = append(alerts, &domain.Alert{
				Type:      "account_disabled",
				Severity:  domain.AlertSeverityWarning,
				AccountID: account.ID,
				Message:   fmt.Sprintf("A conta %s está desativada", account.Name),
				CreatedAt: now,
			})
			continue
		}

		if account.SyncEnabled && (account.LastSyncAt == nil || now.Sub(*account.LastSyncAt) > 48*time.Hour) {
			alerts = append(alerts, &domain.Alert{
				Type:      "sync_stale",
				Severity:  domain.AlertSeverityWarning,
				AccountID: account.ID,
				Message:   fmt.Sprintf("A conta %s está sem sincronização há mais de 48 horas", account.Name),
				CreatedAt: now,
			})
		}

		if !account.Credentials.TokenExpiresAt.IsZero() && account.Credentials.TokenExpiresAt.Before(now) {
			alerts = append(alerts, &domain.Alert{
				Type:      "token_expired",
				Severity:  domain.AlertSeverityCritical,
				AccountID: account.ID,
				Message:   fmt.Sprintf("O access token da conta %s expirou", account.Name),
				CreatedAt: now,
			})
		}
	}

	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		return nil, err
	}

	for _, campaign := range campaigns {
		if campaign.Status != domain.CampaignStatusEnabled || campaign.Metrics == nil {
			continue
		}

		if campaign.Metrics.Impressions == 0 {
			alerts = append(alerts, &domain.Alert{
				Type:      "campaign_no_impressions",
				Severity:  domain.AlertSeverityWarning,
				AccountID: campaign.AccountID,
				Message:   fmt.Sprintf("A campanha %s está ativa mas sem impressões no período", campaign.Name),
				CreatedAt: now,
			})
		}

		if campaign.Budget > 0 && campaign.Metrics.Cost >= campaign.Budget {
			alerts = append(alerts, &domain.Alert{
				Type:      "budget_depleted",
				Severity:  domain.AlertSeverityCritical,
				AccountID: campaign.AccountID,
				Message:   fmt.Sprintf("A campanha %s consumiu todo o orçamento", campaign.Name),
				CreatedAt: now,
			})
		}
	}

	return alerts, nil
}

// GetKeywords retorna as palavras-chave de uma conta no período
func (s *Service) GetKeywords(accountID string, filters *domain.MetricFilters) ([]*domain.Keyword, error) {
	filters.Normalize(time.Now())

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, repository.ErrAccountNotFound
	}

	return s.integrator.GetKeywords(account, filters)
}

// GetGeographic retorna as métricas por localização de uma conta no período
func (s *Service) GetGeographic(accountID string, filters *domain.MetricFilters) ([]*domain.GeographicEntry, error) {
	filters.Normalize(time.Now())

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, repository.ErrAccountNotFound
	}

	return s.integrator.GetGeographic(account, filters)
}
