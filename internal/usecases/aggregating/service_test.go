package aggregating

import (
	"testing"
	"time"

	gadsmocks "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockAccountRepository, *mocks.MockCampaignRepository, *gadsmocks.MockIntegrator) {
	ctrl := gomock.NewController(t)

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockIntegrator := gadsmocks.NewMockIntegrator(ctrl)

	service := &Service{
		accountRepo:  mockAccountRepo,
		campaignRepo: mockCampaignRepo,
		integrator:   mockIntegrator,
		cfg: &config.Config{
			Dashboard: config.Dashboard{AggregateWorkers: 2},
		},
	}

	return service, mockAccountRepo, mockCampaignRepo, mockIntegrator
}

func TestService_GetOverview(t *testing.T) {
	accounts := []*domain.AdAccount{
		{ID: "ACC001", Name: "Loja A", CustomerID: "1111111111", Status: domain.AdAccountStatusActive},
		{ID: "ACC002", Name: "Loja B", CustomerID: "2222222222", Status: domain.AdAccountStatusActive},
		{ID: "ACC003", Name: "Loja C", CustomerID: "3333333333", Status: domain.AdAccountStatusActive},
	}

	tests := []struct {
		name     string
		setup    func(accountRepo *mocks.MockAccountRepository, integrator *gadsmocks.MockIntegrator)
		validate func(t *testing.T, overview *domain.DashboardOverview)
	}{
		{
			name: "Deve somar as métricas brutas e derivar as taxas dos totais",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *gadsmocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return(accounts, nil)

				integrator.EXPECT().
					GetAccountMetrics(accounts[0], gomock.Any()).
					Return(&domain.AccountMetrics{Impressions: 1000, Clicks: 100, Cost: 50, Conversions: 10, ConversionValue: 200}, nil)

				integrator.EXPECT().
					GetAccountMetrics(accounts[1], gomock.Any()).
					Return(&domain.AccountMetrics{Impressions: 3000, Clicks: 100, Cost: 150, Conversions: 20, ConversionValue: 400}, nil)

				integrator.EXPECT().
					GetAccountMetrics(accounts[2], gomock.Any()).
					Return(&domain.AccountMetrics{}, nil)
			},
			validate: func(t *testing.T, overview *domain.DashboardOverview) {
				assert.Equal(t, int64(4000), overview.Metrics.Impressions)
				assert.Equal(t, int64(200), overview.Metrics.Clicks)
				assert.Equal(t, 200.0, overview.Metrics.Cost)

				// CTR = 200/4000 = 5%, não a média dos CTRs individuais
				assert.Equal(t, 5.0, overview.Metrics.CTR)
				assert.Equal(t, 1.0, overview.Metrics.CPC)
				assert.Equal(t, 3.0, overview.Metrics.ROAS)
				assert.Equal(t, 15.0, overview.Metrics.ConversionRate)

				assert.Equal(t, 3, overview.AccountCount)
				assert.Equal(t, 3, overview.AccountsQueried)
				assert.Empty(t, overview.FailedAccounts)
			},
		},
		{
			name: "Conta com falha não derruba a consulta e entra no relatório de falhas",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *gadsmocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return(accounts, nil)

				integrator.EXPECT().
					GetAccountMetrics(accounts[0], gomock.Any()).
					Return(&domain.AccountMetrics{Impressions: 1000, Clicks: 50, Cost: 25}, nil)

				integrator.EXPECT().
					GetAccountMetrics(accounts[1], gomock.Any()).
					Return(nil, assert.AnError)

				integrator.EXPECT().
					GetAccountMetrics(accounts[2], gomock.Any()).
					Return(&domain.AccountMetrics{Impressions: 500, Clicks: 10, Cost: 5}, nil)
			},
			validate: func(t *testing.T, overview *domain.DashboardOverview) {
				assert.Equal(t, int64(1500), overview.Metrics.Impressions)
				assert.Equal(t, 3, overview.AccountCount)
				assert.Equal(t, 2, overview.AccountsQueried)

				assert.Len(t, overview.FailedAccounts, 1)
				assert.Equal(t, "ACC002", overview.FailedAccounts[0].AccountID)
				assert.Equal(t, "2222222222", overview.FailedAccounts[0].CustomerID)
				assert.NotEmpty(t, overview.FailedAccounts[0].Error)
			},
		},
		{
			name: "Sem contas ativas retorna totais zerados, nunca NaN",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *gadsmocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return([]*domain.AdAccount{}, nil)
			},
			validate: func(t *testing.T, overview *domain.DashboardOverview) {
				assert.Equal(t, int64(0), overview.Metrics.Impressions)
				assert.Equal(t, 0.0, overview.Metrics.CTR)
				assert.Equal(t, 0.0, overview.Metrics.CPC)
				assert.Equal(t, 0.0, overview.Metrics.ROAS)
				assert.Equal(t, 0.0, overview.Metrics.ConversionRate)
				assert.Equal(t, 0, overview.AccountCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _, integrator := newTestService(t)
			tt.setup(accountRepo, integrator)

			overview, err := service.GetOverview(&domain.MetricFilters{})

			assert.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, overview)
			}
		})
	}
}

func TestService_GetOverview_ListAccountsError(t *testing.T) {
	service, accountRepo, _, _ := newTestService(t)

	accountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return(nil, assert.AnError)

	_, err := service.GetOverview(&domain.MetricFilters{})
	assert.Error(t, err)
}

func TestService_GetAccountMetrics(t *testing.T) {
	service, accountRepo, _, integrator := newTestService(t)

	account := &domain.AdAccount{ID: "ACC001", CustomerID: "1111111111"}

	accountRepo.EXPECT().GetAccountByID("ACC001").Return(account, nil)
	integrator.EXPECT().
		GetAccountMetrics(account, gomock.Any()).
		Return(&domain.AccountMetrics{Impressions: 100, Clicks: 10}, nil)

	metrics, err := service.GetAccountMetrics("ACC001", &domain.MetricFilters{})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), metrics.Impressions)
}

func TestService_GetAccountMetrics_NotFound(t *testing.T) {
	service, accountRepo, _, _ := newTestService(t)

	accountRepo.EXPECT().GetAccountByID("NOPE").Return(nil, nil)

	_, err := service.GetAccountMetrics("NOPE", &domain.MetricFilters{})
	assert.Error(t, err)
}

func TestService_GetPerformance(t *testing.T) {
	service, accountRepo, _, integrator := newTestService(t)

	accounts := []*domain.AdAccount{
		{ID: "ACC001", CustomerID: "1111111111"},
		{ID: "ACC002", CustomerID: "2222222222"},
	}

	accountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return(accounts, nil)

	integrator.EXPECT().
		GetPerformanceSeries(accounts[0], gomock.Any()).
		Return([]*domain.PerformancePoint{
			{Date: "2024-01-02", Metrics: &domain.AccountMetrics{Impressions: 100, Clicks: 10}},
			{Date: "2024-01-01", Metrics: &domain.AccountMetrics{Impressions: 200, Clicks: 20}},
		}, nil)

	integrator.EXPECT().
		GetPerformanceSeries(accounts[1], gomock.Any()).
		Return([]*domain.PerformancePoint{
			{Date: "2024-01-01", Metrics: &domain.AccountMetrics{Impressions: 50, Clicks: 5}},
		}, nil)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	series, err := service.GetPerformance(&domain.MetricFilters{StartDate: &start, EndDate: &end})

	assert.NoError(t, err)
	assert.Len(t, series, 3)

	// Ordenado por data, com as contas somadas por dia
	assert.Equal(t, "2024-01-01", series[0].Date)
	assert.Equal(t, int64(250), series[0].Metrics.Impressions)
	assert.Equal(t, int64(25), series[0].Metrics.Clicks)

	assert.Equal(t, "2024-01-02", series[1].Date)
	assert.Equal(t, int64(100), series[1].Metrics.Impressions)

	// Dia sem dados entra com métricas zeradas
	assert.Equal(t, "2024-01-03", series[2].Date)
	assert.Equal(t, int64(0), series[2].Metrics.Impressions)
}

func TestService_GetTopCampaigns(t *testing.T) {
	service, accountRepo, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{
		{ID: "C1", AccountID: "ACC001", Name: "Campanha A", Metrics: &domain.AccountMetrics{Cost: 10}},
		{ID: "C2", AccountID: "ACC001", Name: "Campanha B", Metrics: &domain.AccountMetrics{Cost: 30}},
		{ID: "C3", AccountID: "ACC002", Name: "Campanha C", Metrics: &domain.AccountMetrics{Cost: 20}},
	}, nil)

	accountRepo.EXPECT().ListAccounts(nil).Return([]*domain.AdAccount{
		{ID: "ACC001", Name: "Loja A"},
		{ID: "ACC002", Name: "Loja B"},
	}, nil)

	top, err := service.GetTopCampaigns(2)

	assert.NoError(t, err)
	assert.Len(t, top, 2)

	assert.Equal(t, "Campanha B", top[0].Campaign.Name)
	assert.Equal(t, "Loja A", top[0].AccountName)
	assert.Equal(t, "Campanha C", top[1].Campaign.Name)
	assert.Equal(t, "Loja B", top[1].AccountName)
}

func TestService_GetAlerts(t *testing.T) {
	service, accountRepo, campaignRepo, _ := newTestService(t)

	now := time.Now()
	oldSync := now.Add(-72 * time.Hour)
	recentSync := now.Add(-1 * time.Hour)

	accountRepo.EXPECT().ListAccounts(nil).Return([]*domain.AdAccount{
		{ID: "ACC001", Name: "Loja A", Status: domain.AdAccountStatusActive, SyncEnabled: true, LastSyncAt: &oldSync},
		{ID: "ACC002", Name: "Loja B", Status: domain.AdAccountStatusDisabled},
		{ID: "ACC003", Name: "Loja C", Status: domain.AdAccountStatusActive, SyncEnabled: true, LastSyncAt: &recentSync},
	}, nil)

	campaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{
		{ID: "C1", AccountID: "ACC001", Name: "Sem Impressões", Status: domain.CampaignStatusEnabled, Metrics: &domain.AccountMetrics{Impressions: 0}},
		{ID: "C2", AccountID: "ACC001", Name: "Orçamento Esgotado", Status: domain.CampaignStatusEnabled, Budget: 100, Metrics: &domain.AccountMetrics{Impressions: 500, Cost: 120}},
		{ID: "C3", AccountID: "ACC003", Name: "Saudável", Status: domain.CampaignStatusEnabled, Budget: 100, Metrics: &domain.AccountMetrics{Impressions: 500, Cost: 20}},
		{ID: "C4", AccountID: "ACC003", Name: "Pausada", Status: domain.CampaignStatusPaused, Metrics: &domain.AccountMetrics{Impressions: 0}},
	}, nil)

	alerts, err := service.GetAlerts()

	assert.NoError(t, err)
	assert.Len(t, alerts, 4)

	types := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		types = append(types, alert.Type)
	}
	assert.Contains(t, types, "sync_stale")
	assert.Contains(t, types, "account_disabled")
	assert.Contains(t, types, "campaign_no_impressions")
	assert.Contains(t, types, "budget_depleted")
}
