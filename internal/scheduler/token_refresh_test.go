package scheduler

import (
	"testing"
	"time"

	googlemocks "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTokenRefreshService_refreshAllTokens(t *testing.T) {
	account := func(id string, refreshToken string, expiresAt time.Time) *domain.AdAccount {
		return &domain.AdAccount{
			ID:     id,
			Status: domain.AdAccountStatusActive,
			Credentials: domain.AdAccountCredentials{
				RefreshToken:   refreshToken,
				TokenExpiresAt: expiresAt,
			},
		}
	}

	tests := []struct {
		name     string
		setup    func(accountRepo *mocks.MockAccountRepository, integrator *googlemocks.MockIntegrator)
		validate func(t *testing.T, service *TokenRefreshService)
	}{
		{
			name: "Deve renovar apenas tokens dentro da janela de expiração",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *googlemocks.MockIntegrator) {
				expiring := account("ACC1", "rt1", time.Now().Add(5*time.Minute))
				healthy := account("ACC2", "rt2", time.Now().Add(2*time.Hour))

				accountRepo.EXPECT().
					ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return([]*domain.AdAccount{expiring, healthy}, nil)

				// Só a conta prestes a expirar é renovada
				integrator.EXPECT().RefreshAccountToken(expiring).Return(nil)
			},
			validate: func(t *testing.T, service *TokenRefreshService) {
				assert.Equal(t, 1, service.lastRunRefreshed)
				assert.Equal(t, 0, service.lastRunFailed)
			},
		},
		{
			name: "Deve pular contas sem refresh token",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *googlemocks.MockIntegrator) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any()).
					Return([]*domain.AdAccount{account("ACC1", "", time.Now())}, nil)
			},
			validate: func(t *testing.T, service *TokenRefreshService) {
				assert.Equal(t, 0, service.lastRunRefreshed)
				assert.Equal(t, 0, service.lastRunFailed)
			},
		},
		{
			name: "Falha na renovação conta como falha e não interrompe as demais",
			setup: func(accountRepo *mocks.MockAccountRepository, integrator *googlemocks.MockIntegrator) {
				first := account("ACC1", "rt1", time.Now())
				second := account("ACC2", "rt2", time.Now())

				accountRepo.EXPECT().
					ListAccounts(gomock.Any()).
					Return([]*domain.AdAccount{first, second}, nil)

				integrator.EXPECT().RefreshAccountToken(first).Return(errors.New("invalid_grant"))
				integrator.EXPECT().RefreshAccountToken(second).Return(nil)
			},
			validate: func(t *testing.T, service *TokenRefreshService) {
				assert.Equal(t, 1, service.lastRunRefreshed)
				assert.Equal(t, 1, service.lastRunFailed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := mocks.NewMockAccountRepository(ctrl)
			integrator := googlemocks.NewMockIntegrator(ctrl)

			tt.setup(accountRepo, integrator)

			service := &TokenRefreshService{
				config: TokenRefreshConfig{
					ExpiryBufferMinutes: 10,
					Enabled:             true,
				},
				accountRepo: accountRepo,
				integrator:  integrator,
			}

			service.refreshAllTokens()

			tt.validate(t, service)
			assert.False(t, service.refreshRunning)
		})
	}
}
