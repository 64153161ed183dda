package account

import (
	"context"
	"strings"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/sirupsen/logrus"
)

type AccountService interface {
	ListAdAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	GetAccount(accountID string) (*domain.AdAccount, error)
	CreateAccount(req *domain.CreateAdAccountRequest) (*domain.AdAccount, error)
	UpdateAccount(req *domain.UpdateAdAccountRequest) (*domain.AdAccount, error)
	DeleteAccount(accountID string) error
	SyncAccount(ctx context.Context, accountID string) (int, error)
	ListCampaigns(accountID string) ([]*domain.Campaign, error)
}

type Service struct {
	accountRepository  repository.AccountRepository
	campaignRepository repository.CampaignRepository
	googleAdsService   googleads.Integrator
}

func NewService(
	accountRepository repository.AccountRepository,
	campaignRepository repository.CampaignRepository,
	googleAdsService googleads.Integrator,
) AccountService {
	return &Service{
		accountRepository:  accountRepository,
		campaignRepository: campaignRepository,
		googleAdsService:   googleAdsService,
	}
}

func (s *Service) ListAdAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	accounts, err := s.accountRepository.ListAccounts(availableStatus)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return accounts, nil
}

func (s *Service) GetAccount(accountID string) (*domain.AdAccount, error) {
	if accountID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	account, err := s.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, accountID, "Falha ao consultar conta no banco de dados")
	}
	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, accountID, "Conta não encontrada")
	}

	return account, nil
}

func (s *Service) CreateAccount(req *domain.CreateAdAccountRequest) (*domain.AdAccount, error) {
	if details := req.Validate(); len(details) > 0 {
		return nil, NewAccountError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, strings.Join(details, "; "))
	}

	// O customer ID circula com hífens na interface do Google Ads, mas a API
	// espera só os dígitos
	customerID := strings.ReplaceAll(req.CustomerID, "-", "")

	existing, err := s.accountRepository.GetAccountByCustomerID(customerID)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao verificar conta existente")
	}
	if existing != nil {
		return nil, NewAccountErrorWithID(ErrAccountExists, apiErrors.ErrInvalidRequest, existing.ID, "Já existe uma conta cadastrada com esse customer_id")
	}

	accountID, err := utils.GenerateID()
	if err != nil {
		return nil, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para conta")
	}

	syncEnabled := true
	if req.SyncEnabled != nil {
		syncEnabled = *req.SyncEnabled
	}

	account := &domain.AdAccount{
		ID:         accountID,
		Name:       req.Name,
		CustomerID: customerID,
		Status:     domain.AdAccountStatusActive,
		Credentials: domain.AdAccountCredentials{
			ClientID:       req.ClientID,
			ClientSecret:   req.ClientSecret,
			RefreshToken:   req.RefreshToken,
			DeveloperToken: req.DeveloperToken,
		},
		SyncEnabled: syncEnabled,
	}

	if err := s.accountRepository.Create(account); err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cadastrar conta no banco de dados")
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"customer_id": account.CustomerID,
	}).Info("Conta do Google Ads cadastrada")

	return account, nil
}

func (s *Service) UpdateAccount(req *domain.UpdateAdAccountRequest) (*domain.AdAccount, error) {
	if req.ID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	account, err := s.accountRepository.GetAccountByID(req.ID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, req.ID, "Falha ao consultar conta no banco de dados")
	}
	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, req.ID, "Conta não encontrada")
	}

	if err := s.accountRepository.UpdateAccount(req); err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.ID, "Falha ao atualizar conta no banco de dados")
	}

	updated, err := s.accountRepository.GetAccountByID(req.ID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, req.ID, "Falha ao consultar conta atualizada")
	}

	return updated, nil
}

func (s *Service) DeleteAccount(accountID string) error {
	if accountID == "" {
		return NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	account, err := s.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return NewAccountErrorWithID(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, accountID, "Falha ao consultar conta no banco de dados")
	}
	if account == nil {
		return NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, accountID, "Conta não encontrada")
	}

	if err := s.accountRepository.Delete(accountID); err != nil {
		return NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao remover conta do banco de dados")
	}

	logrus.WithField("account_id", accountID).Info("Conta do Google Ads removida")

	return nil
}

// SyncAccount recalcula o espelho de campanhas de uma única conta sob
// demanda e retorna quantas campanhas foram sincronizadas
func (s *Service) SyncAccount(ctx context.Context, accountID string) (int, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return 0, err
	}

	campaigns, err := s.googleAdsService.GetCampaigns(account, nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao obter campanhas da conta no Google Ads")
		return 0, NewAccountErrorWithID(ErrGoogleAdsIntegration, apiErrors.ErrExternalService, accountID, "Falha ao obter campanhas na API do Google Ads")
	}

	if err := s.campaignRepository.ReplaceForAccount(ctx, accountID, campaigns); err != nil {
		return 0, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao salvar campanhas no banco de dados")
	}

	if err := s.accountRepository.UpdateLastSync(accountID, time.Now()); err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Warn("Erro ao registrar horário de sincronização da conta")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(campaigns),
	}).Info("Campanhas da conta sincronizadas manualmente")

	return len(campaigns), nil
}

func (s *Service) ListCampaigns(accountID string) ([]*domain.Campaign, error) {
	if _, err := s.GetAccount(accountID); err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepository.ListByAccount(accountID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao listar campanhas no banco de dados")
	}

	return campaigns, nil
}
