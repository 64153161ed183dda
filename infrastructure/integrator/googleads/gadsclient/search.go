package gadsclient

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	googledomain "github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Search executa uma consulta GAQL no endpoint googleAds:search, paginando
// até esgotar os resultados. Consultas recentes são servidas do cache
func (c *GoogleAdsClient) Search(account *domain.AdAccount, query string) ([]googledomain.SearchRow, error) {
	if rows, ok := c.cache.Get(account.CustomerID, query); ok {
		logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"customer_id": account.CustomerID,
		}).Debug("googleads: serving search results from cache")
		return rows, nil
	}

	rows, err := c.searchAllPages(account, query)
	if err != nil {
		// Se o token foi renovado durante a chamada, tentar novamente uma vez
		if errors.Is(err, ErrTokenRenewed) {
			rows, err = c.searchAllPages(account, query)
		}
		if err != nil {
			return nil, err
		}
	}

	c.cache.Set(account.CustomerID, query, rows)

	return rows, nil
}

func (c *GoogleAdsClient) searchAllPages(account *domain.AdAccount, query string) ([]googledomain.SearchRow, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(account); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	rows := make([]googledomain.SearchRow, 0)
	pageToken := ""

	for {
		response, err := c.searchPage(account, query, pageToken)
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)

		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}
}

func (c *GoogleAdsClient) searchPage(account *domain.AdAccount, query, pageToken string) (*googledomain.SearchResponse, error) {
	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.GoogleAds.URL, account.CustomerID)

	payload, err := json.Marshal(googledomain.SearchRequest{
		Query:     query,
		PageToken: pageToken,
	})
	if err != nil {
		return nil, err
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithField("customer_id", account.CustomerID).Debug("googleads: search request\n" + utils.PrettyJson(payload))
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+account.Credentials.AccessToken)
	req.Header.Set("developer-token", account.Credentials.DeveloperToken)
	if c.Cfg.GoogleAds.LoginCID != "" {
		req.Header.Set("login-customer-id", c.Cfg.GoogleAds.LoginCID)
	}

	client := &http.Client{
		Timeout: time.Duration(c.Cfg.GoogleAds.TimeoutSec) * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.TokenManager.HandleResponse(account, resp)
	if err != nil {
		return nil, err
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}
