package gadsclient

import (
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
)

type Client interface {
	Search(account *domain.AdAccount, query string) ([]googledomain.SearchRow, error)
	RefreshToken(account *domain.AdAccount) error
	EnsureValidToken(account *domain.AdAccount) error
}

type GoogleAdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager

	cache *searchCache
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	client := &GoogleAdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		cache:        newSearchCache(time.Duration(cfg.GoogleAds.CacheTTL) * time.Second),
	}
	return client
}

// RefreshToken obtém um novo access token para a conta
func (c *GoogleAdsClient) RefreshToken(account *domain.AdAccount) error {
	return c.TokenManager.RefreshToken(account)
}

// EnsureValidToken verifica se o token atual da conta é válido e tenta
// renová-lo se necessário
func (c *GoogleAdsClient) EnsureValidToken(account *domain.AdAccount) error {
	return c.TokenManager.EnsureValidToken(account)
}
