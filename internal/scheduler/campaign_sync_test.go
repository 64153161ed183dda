package scheduler

import (
	"context"
	"testing"

	googlemocks "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCampaignSyncService_syncAllAccounts(t *testing.T) {
	account := func(id string, syncEnabled bool) *domain.AdAccount {
		return &domain.AdAccount{
			ID:          id,
			Name:        "Conta " + id,
			CustomerID:  "123" + id,
			Status:      domain.AdAccountStatusActive,
			SyncEnabled: syncEnabled,
		}
	}

	tests := []struct {
		name  string
		setup func(accountRepo *mocks.MockAccountRepository, campaignRepo *mocks.MockCampaignRepository, integrator *googlemocks.MockIntegrator)
	}{
		{
			name: "Deve sincronizar e substituir o espelho de campanhas das contas habilitadas",
			setup: func(accountRepo *mocks.MockAccountRepository, campaignRepo *mocks.MockCampaignRepository, integrator *googlemocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return([]*domain.AdAccount{account("ACC1", true)}, nil)

				campaigns := []*domain.Campaign{{ID: "CP1", Name: "Campanha Verão"}}

				integrator.EXPECT().GetCampaigns(gomock.Any(), nil).Return(campaigns, nil)
				campaignRepo.EXPECT().ReplaceForAccount(gomock.Any(), "ACC1", campaigns).Return(nil)
				accountRepo.EXPECT().UpdateLastSync("ACC1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "Deve pular contas com sincronização desabilitada",
			setup: func(accountRepo *mocks.MockAccountRepository, campaignRepo *mocks.MockCampaignRepository, integrator *googlemocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any()).
					Return([]*domain.AdAccount{account("ACC1", false)}, nil)
				// Nenhuma chamada ao integrador nem ao repositório de campanhas
			},
		},
		{
			name: "Falha em uma conta não interrompe as demais",
			setup: func(accountRepo *mocks.MockAccountRepository, campaignRepo *mocks.MockCampaignRepository, integrator *googlemocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any()).
					Return([]*domain.AdAccount{account("ACC1", true), account("ACC2", true)}, nil)

				integrator.EXPECT().GetCampaigns(gomock.Any(), nil).
					DoAndReturn(func(acc *domain.AdAccount, _ *domain.MetricFilters) ([]*domain.Campaign, error) {
						if acc.ID == "ACC1" {
							return nil, errors.New("token inválido")
						}
						return []*domain.Campaign{{ID: "CP2"}}, nil
					}).Times(2)

				campaignRepo.EXPECT().ReplaceForAccount(gomock.Any(), "ACC2", gomock.Any()).Return(nil)
				accountRepo.EXPECT().UpdateLastSync("ACC2", gomock.Any()).Return(nil)
			},
		},
		{
			name: "Erro ao listar contas encerra a execução sem chamadas ao integrador",
			setup: func(accountRepo *mocks.MockAccountRepository, campaignRepo *mocks.MockCampaignRepository, integrator *googlemocks.MockIntegrator) {
				accountRepo.EXPECT().ListAccounts(gomock.Any()).Return(nil, errors.New("db offline"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := mocks.NewMockAccountRepository(ctrl)
			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			integrator := googlemocks.NewMockIntegrator(ctrl)

			tt.setup(accountRepo, campaignRepo, integrator)

			service := &CampaignSyncService{
				config: CampaignSyncConfig{
					MaxConcurrentJobs: 2,
					SyncEnabled:       true,
				},
				accountRepo:  accountRepo,
				campaignRepo: campaignRepo,
				integrator:   integrator,
			}

			service.syncAllAccounts(context.Background())

			assert.False(t, service.syncRunning)
			assert.False(t, service.lastSyncStartedAt.IsZero())
		})
	}
}
