package reporting

import (
	"testing"

	gadsmocks "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockAccountRepository, *mocks.MockReportRepository, *gadsmocks.MockIntegrator) {
	ctrl := gomock.NewController(t)

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockReportRepo := mocks.NewMockReportRepository(ctrl)
	mockIntegrator := gadsmocks.NewMockIntegrator(ctrl)

	service := &Service{
		accountRepo: mockAccountRepo,
		reportRepo:  mockReportRepo,
		integrator:  mockIntegrator,
		cfg: &config.Config{
			Dashboard: config.Dashboard{AggregateWorkers: 2},
		},
	}

	return service, mockAccountRepo, mockReportRepo, mockIntegrator
}

func TestFindTemplate(t *testing.T) {
	assert.NotNil(t, FindTemplate("campaign_performance"))
	assert.NotNil(t, FindTemplate("keyword_performance"))
	assert.NotNil(t, FindTemplate("geographic_performance"))
	assert.NotNil(t, FindTemplate("account_metrics"))
	assert.Nil(t, FindTemplate("inexistente"))
}

func TestService_Generate_SortAndLimit(t *testing.T) {
	service, accountRepo, reportRepo, integrator := newTestService(t)

	account := &domain.AdAccount{ID: "ACC001", Name: "Loja A", Status: domain.AdAccountStatusActive}

	accountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return([]*domain.AdAccount{account}, nil)

	integrator.EXPECT().
		GetCampaigns(account, gomock.Any()).
		Return([]*domain.Campaign{
			{ExternalID: "C1", Name: "Campanha A", Metrics: &domain.AccountMetrics{Cost: 10}},
			{ExternalID: "C2", Name: "Campanha B", Metrics: &domain.AccountMetrics{Cost: 30}},
			{ExternalID: "C3", Name: "Campanha C", Metrics: &domain.AccountMetrics{Cost: 20}},
		}, nil)

	reportRepo.EXPECT().Save(gomock.Any()).Return(nil)

	report, err := service.Generate(&domain.GenerateReportRequest{
		TemplateID: "campaign_performance",
		Config: &domain.ReportConfig{
			SortBy:    "cost",
			SortOrder: domain.SortDesc,
			Limit:     2,
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.RowCount)

	// Custos [10, 30, 20] ordenados desc com limite 2 viram [30, 20]
	assert.Equal(t, 30.0, report.Rows[0]["cost"])
	assert.Equal(t, 20.0, report.Rows[1]["cost"])

	// O resumo considera apenas as linhas que sobraram após o limite
	assert.Equal(t, 50.0, report.Summary["cost"].Total)
	assert.Equal(t, 25.0, report.Summary["cost"].Average)
	assert.Equal(t, 20.0, report.Summary["cost"].Min)
	assert.Equal(t, 30.0, report.Summary["cost"].Max)
}

func TestService_Generate_SubstringFilter(t *testing.T) {
	service, accountRepo, reportRepo, integrator := newTestService(t)

	account := &domain.AdAccount{ID: "ACC001", Name: "Loja A", Status: domain.AdAccountStatusActive}

	accountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return([]*domain.AdAccount{account}, nil)

	integrator.EXPECT().
		GetCampaigns(account, gomock.Any()).
		Return([]*domain.Campaign{
			{ExternalID: "C1", Name: "Campanha de Verão", Metrics: &domain.AccountMetrics{}},
			{ExternalID: "C2", Name: "Campanha de Inverno", Metrics: &domain.AccountMetrics{}},
			{ExternalID: "C3", Name: "Promoção verão relâmpago", Metrics: &domain.AccountMetrics{}},
		}, nil)

	reportRepo.EXPECT().Save(gomock.Any()).Return(nil)

	report, err := service.Generate(&domain.GenerateReportRequest{
		TemplateID: "campaign_performance",
		Config: &domain.ReportConfig{
			Filters: map[string]string{"campaign_name": "verão"},
		},
	})

	assert.NoError(t, err)

	// Filtro por substring sem diferenciar maiúsculas: pega "Verão" e "verão"
	assert.Equal(t, 2, report.RowCount)
}

func TestService_Generate_UnknownTemplate(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.Generate(&domain.GenerateReportRequest{TemplateID: "nope"})
	assert.Error(t, err)
}

func TestService_Generate_FailedAccountSkipped(t *testing.T) {
	service, accountRepo, reportRepo, integrator := newTestService(t)

	accounts := []*domain.AdAccount{
		{ID: "ACC001", Name: "Loja A", Status: domain.AdAccountStatusActive},
		{ID: "ACC002", Name: "Loja B", Status: domain.AdAccountStatusActive},
	}

	accountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return(accounts, nil)

	integrator.EXPECT().
		GetAccountMetrics(accounts[0], gomock.Any()).
		Return(&domain.AccountMetrics{Impressions: 100}, nil)

	integrator.EXPECT().
		GetAccountMetrics(accounts[1], gomock.Any()).
		Return(nil, assert.AnError)

	reportRepo.EXPECT().Save(gomock.Any()).Return(nil)

	report, err := service.Generate(&domain.GenerateReportRequest{
		TemplateID: "account_metrics",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.RowCount)
	assert.Equal(t, "ACC001", report.Rows[0]["account_id"])
}

func TestSortRows_Lexicographic(t *testing.T) {
	rows := []domain.ReportRow{
		{"campaign_name": "Bravo"},
		{"campaign_name": "Alfa"},
		{"campaign_name": "Charlie"},
	}

	sortRows(rows, "campaign_name", domain.SortAsc)

	assert.Equal(t, "Alfa", rows[0]["campaign_name"])
	assert.Equal(t, "Bravo", rows[1]["campaign_name"])
	assert.Equal(t, "Charlie", rows[2]["campaign_name"])
}

func TestSortRows_NumericDesc(t *testing.T) {
	rows := []domain.ReportRow{
		{"clicks": int64(2)},
		{"clicks": int64(10)},
		{"clicks": int64(9)},
	}

	sortRows(rows, "clicks", domain.SortDesc)

	// Comparação numérica: 10 vem antes de 9, não depois como texto
	assert.Equal(t, int64(10), rows[0]["clicks"])
	assert.Equal(t, int64(9), rows[1]["clicks"])
	assert.Equal(t, int64(2), rows[2]["clicks"])
}
