package gadsclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTokenRenewed sinaliza que o access token expirou durante a chamada e já
// foi renovado. Quem chamou deve repetir a requisição uma única vez
var ErrTokenRenewed = errors.New("token expirado e renovado, tente novamente")

// CredentialStore persiste credenciais renovadas. Implementado pelo
// repositório de contas
type CredentialStore interface {
	UpdateCredentials(accountID string, creds *domain.AdAccountCredentials) error
}

// TokenManager gerencia os access tokens por conta. Cada conta tem as suas
// próprias credenciais OAuth, então a renovação é serializada por conta e não
// globalmente
type TokenManager struct {
	cfg       *config.Config
	credStore CredentialStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, credStore CredentialStore) *TokenManager {
	return &TokenManager{
		cfg:       cfg,
		credStore: credStore,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (tm *TokenManager) accountLock(accountID string) *sync.Mutex {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	lock, ok := tm.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		tm.locks[accountID] = lock
	}
	return lock
}

// EnsureValidToken verifica se o access token da conta ainda é válido e o
// renova proativamente quando está vazio ou perto de expirar
func (tm *TokenManager) EnsureValidToken(account *domain.AdAccount) error {
	buffer := time.Duration(tm.cfg.TokenRefreshJob.ExpiryBufferMinutes) * time.Minute

	if account.Credentials.AccessToken == "" {
		logrus.WithField("account_id", account.ID).Info("Token não inicializado. Renovando...")
		return tm.RefreshToken(account)
	}

	if time.Until(account.Credentials.TokenExpiresAt) < buffer {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"expires_at": account.Credentials.TokenExpiresAt.Format(time.RFC3339),
		}).Info("Token próximo da expiração. Renovando proativamente...")
		return tm.RefreshToken(account)
	}

	return nil
}

// RefreshToken obtém um novo access token para a conta e persiste as
// credenciais atualizadas
func (tm *TokenManager) RefreshToken(account *domain.AdAccount) error {
	lock := tm.accountLock(account.ID)
	lock.Lock()
	defer lock.Unlock()

	tokenResp, err := RefreshAccessToken(
		tm.cfg.GoogleAds.OAuthURL,
		account.Credentials.ClientID,
		account.Credentials.ClientSecret,
		account.Credentials.RefreshToken,
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("Erro ao renovar access token da conta")
		return fmt.Errorf("erro ao renovar token da conta %s: %w", account.ID, err)
	}

	account.Credentials.AccessToken = tokenResp.AccessToken
	account.Credentials.TokenExpiresAt = CalculateTokenExpiration(tokenResp.ExpiresIn)

	if err := tm.credStore.UpdateCredentials(account.ID, &account.Credentials); err != nil {
		// O token em memória continua válido, apenas a persistência falhou
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Warn("Erro ao persistir credenciais renovadas")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"expires_at": account.Credentials.TokenExpiresAt.Format(time.RFC3339),
	}).Info("Access token renovado com sucesso")

	return nil
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado.
// Quando detecta token expirado, renova e retorna ErrTokenRenewed para que a
// chamada seja repetida
func (tm *TokenManager) HandleResponse(account *domain.AdAccount, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	errorResp, parseErr := ParseErrorResponse(body)
	if parseErr == nil && errorResp.IsTokenExpired() {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"status":     errorResp.Error.Status,
		}).Warn("Token expirado detectado pela API do Google Ads")

		if refreshErr := tm.RefreshToken(account); refreshErr != nil {
			return nil, fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
		}

		return nil, ErrTokenRenewed
	}

	return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", resp.StatusCode, string(body))
}

// ParseErrorResponse tenta parsear um erro da API do Google Ads
func ParseErrorResponse(body []byte) (*googledomain.ErrorResponse, error) {
	var errorResp googledomain.ErrorResponse
	err := json.Unmarshal(body, &errorResp)
	if err != nil {
		return nil, err
	}
	return &errorResp, nil
}
