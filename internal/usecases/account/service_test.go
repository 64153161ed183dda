package account

import (
	"context"
	"testing"

	googlemocks "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockAccountRepository, *mocks.MockCampaignRepository, *googlemocks.MockIntegrator) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	integrator := googlemocks.NewMockIntegrator(ctrl)

	service := &Service{
		accountRepository:  accountRepo,
		campaignRepository: campaignRepo,
		googleAdsService:   integrator,
	}

	return service, accountRepo, campaignRepo, integrator
}

func validCreateRequest() *domain.CreateAdAccountRequest {
	return &domain.CreateAdAccountRequest{
		Name:           "Loja Centro",
		CustomerID:     "123-456-7890",
		ClientID:       "client",
		ClientSecret:   "secret",
		RefreshToken:   "refresh",
		DeveloperToken: "dev",
	}
}

func TestCreateAccount(t *testing.T) {
	t.Run("Deve cadastrar conta normalizando o customer_id", func(t *testing.T) {
		service, accountRepo, _, _ := newTestService(t)

		accountRepo.EXPECT().GetAccountByCustomerID("1234567890").Return(nil, nil)
		accountRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(account *domain.AdAccount) error {
			assert.NotEmpty(t, account.ID)
			assert.Equal(t, "1234567890", account.CustomerID)
			assert.Equal(t, domain.AdAccountStatusActive, account.Status)
			assert.True(t, account.SyncEnabled)
			assert.Equal(t, "refresh", account.Credentials.RefreshToken)
			return nil
		})

		account, err := service.CreateAccount(validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "Loja Centro", account.Name)
	})

	t.Run("Deve recusar customer_id duplicado", func(t *testing.T) {
		service, accountRepo, _, _ := newTestService(t)

		accountRepo.EXPECT().GetAccountByCustomerID("1234567890").
			Return(&domain.AdAccount{ID: "ACC1"}, nil)

		_, err := service.CreateAccount(validCreateRequest())

		require.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("Deve recusar cadastro sem campos obrigatórios", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.CreateAccount(&domain.CreateAdAccountRequest{Name: "Só nome"})

		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestGetAccount(t *testing.T) {
	service, accountRepo, _, _ := newTestService(t)

	accountRepo.EXPECT().GetAccountByID("ACC1").Return(&domain.AdAccount{ID: "ACC1"}, nil)
	accountRepo.EXPECT().GetAccountByID("ACC2").Return(nil, nil)

	account, err := service.GetAccount("ACC1")
	require.NoError(t, err)
	assert.Equal(t, "ACC1", account.ID)

	_, err = service.GetAccount("ACC2")
	require.ErrorIs(t, err, ErrAccountNotFound)

	_, err = service.GetAccount("")
	require.ErrorIs(t, err, ErrAccountIDRequired)
}

func TestSyncAccount(t *testing.T) {
	t.Run("Deve substituir o espelho de campanhas e registrar a sincronização", func(t *testing.T) {
		service, accountRepo, campaignRepo, integrator := newTestService(t)

		account := &domain.AdAccount{ID: "ACC1", CustomerID: "123"}
		campaigns := []*domain.Campaign{{ID: "CP1"}, {ID: "CP2"}}

		accountRepo.EXPECT().GetAccountByID("ACC1").Return(account, nil)
		integrator.EXPECT().GetCampaigns(account, nil).Return(campaigns, nil)
		campaignRepo.EXPECT().ReplaceForAccount(gomock.Any(), "ACC1", campaigns).Return(nil)
		accountRepo.EXPECT().UpdateLastSync("ACC1", gomock.Any()).Return(nil)

		count, err := service.SyncAccount(context.Background(), "ACC1")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Falha na API do Google Ads vira erro de serviço externo", func(t *testing.T) {
		service, accountRepo, _, integrator := newTestService(t)

		account := &domain.AdAccount{ID: "ACC1"}
		accountRepo.EXPECT().GetAccountByID("ACC1").Return(account, nil)
		integrator.EXPECT().GetCampaigns(account, nil).Return(nil, errors.New("quota exceeded"))

		_, err := service.SyncAccount(context.Background(), "ACC1")

		require.ErrorIs(t, err, ErrGoogleAdsIntegration)
	})
}
