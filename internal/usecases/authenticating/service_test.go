package authenticating

import (
	"testing"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:          "segredo-de-teste",
			TokenTTLMinutes: 60,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name       string
		user       *domain.User
		password   string
		setupMocks func(userRepo *mocks.MockUserRepository)
		wantErr    error
		check      func(t *testing.T, created *domain.User)
	}{
		{
			name:     "cria usuário com senha criptografada e role padrão",
			user:     &domain.User{Name: "Maria", Email: " Maria@Empresa.com "},
			password: "senha123",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@empresa.com").Return(nil, nil)
				userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
					assert.Equal(t, "maria@empresa.com", u.Email)
					assert.Equal(t, 3, u.RoleID)
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha123")))
					u.ID = 10
					return u, nil
				})
			},
			check: func(t *testing.T, created *domain.User) {
				assert.Equal(t, 10, created.ID)
				assert.Empty(t, created.PasswordHash)
			},
		},
		{
			name:       "rejeita dados obrigatórios ausentes",
			user:       &domain.User{Name: "Sem Email"},
			password:   "senha123",
			setupMocks: func(userRepo *mocks.MockUserRepository) {},
			wantErr:    ErrMissingRequiredData,
		},
		{
			name:     "rejeita email já cadastrado",
			user:     &domain.User{Name: "Maria", Email: "maria@empresa.com"},
			password: "senha123",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().
					GetUserByEmail("maria@empresa.com").
					Return(&domain.User{ID: 1, Email: "maria@empresa.com"}, nil)
			},
			wantErr: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			tt.setupMocks(userRepo)

			service := NewService(userRepo, testConfig())

			created, err := service.CreateUser(tt.user, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, created)
		})
	}
}

func TestLoginUser(t *testing.T) {
	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           7,
			Name:         "João",
			Email:        "joao@empresa.com",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
			RoleID:       2,
		}
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(t *testing.T, userRepo *mocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "autentica com credenciais válidas",
			email:    "Joao@Empresa.com",
			password: "senha123",
			setupMocks: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("joao@empresa.com").Return(activeUser(t), nil)
			},
		},
		{
			name:       "rejeita credenciais ausentes",
			email:      "joao@empresa.com",
			password:   "",
			setupMocks: func(t *testing.T, userRepo *mocks.MockUserRepository) {},
			wantErr:    ErrMissingRequiredData,
		},
		{
			name:     "rejeita usuário inexistente",
			email:    "ninguem@empresa.com",
			password: "senha123",
			setupMocks: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ninguem@empresa.com").Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:     "rejeita conta desativada",
			email:    "joao@empresa.com",
			password: "senha123",
			setupMocks: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				user := activeUser(t)
				user.Active = false
				userRepo.EXPECT().GetUserByEmail("joao@empresa.com").Return(user, nil)
			},
			wantErr: ErrUserDisabled,
		},
		{
			name:     "rejeita senha incorreta",
			email:    "joao@empresa.com",
			password: "senha-errada",
			setupMocks: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("joao@empresa.com").Return(activeUser(t), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			tt.setupMocks(t, userRepo)

			service := NewService(userRepo, testConfig())

			token, user, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Empty(t, user.PasswordHash)

			// O token emitido deve ser validável pelo próprio serviço
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
			assert.Equal(t, "João", claims.UserName)
			assert.Equal(t, 2, claims.UserRoleID)
		})
	}
}

func TestValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)

	t.Run("rejeita token malformado", func(t *testing.T) {
		service := NewService(userRepo, testConfig())

		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.Error(t, err)
	})

	t.Run("rejeita token expirado", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.TokenTTLMinutes = -5

		userRepo.EXPECT().
			GetUserByEmail("joao@empresa.com").
			Return(&domain.User{
				ID:           7,
				Email:        "joao@empresa.com",
				PasswordHash: hashPassword(t, "senha123"),
				Active:       true,
			}, nil)

		service := NewService(userRepo, cfg)

		token, _, err := service.LoginUser("joao@empresa.com", "senha123")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejeita token assinado com outro segredo", func(t *testing.T) {
		cfg := testConfig()

		userRepo.EXPECT().
			GetUserByEmail("joao@empresa.com").
			Return(&domain.User{
				ID:           7,
				Email:        "joao@empresa.com",
				PasswordHash: hashPassword(t, "senha123"),
				Active:       true,
			}, nil)

		service := NewService(userRepo, cfg)

		token, _, err := service.LoginUser("joao@empresa.com", "senha123")
		require.NoError(t, err)

		otherCfg := testConfig()
		otherCfg.Auth.Secret = "outro-segredo"
		otherService := NewService(userRepo, otherCfg)

		_, err = otherService.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestGetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().
		GetUserByID(7).
		Return(&domain.User{ID: 7, Name: "João", PasswordHash: "hash"}, nil)

	service := NewService(userRepo, testConfig())

	user, err := service.GetUserProfile(7)
	require.NoError(t, err)
	assert.Equal(t, "João", user.Name)
	assert.Empty(t, user.PasswordHash)
}
