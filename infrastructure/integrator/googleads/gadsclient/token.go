package gadsclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenResponse representa a resposta do endpoint OAuth do Google ao trocar
// um refresh token por um access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// RefreshAccessToken obtém um novo access token a partir do refresh token da
// conta. O refresh token do Google não expira com o uso, apenas o access token
func RefreshAccessToken(oauthURL, clientID, clientSecret, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "refresh_token")
	params.Add("client_id", clientID)
	params.Add("client_secret", clientSecret)
	params.Add("refresh_token", refreshToken)

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Post(oauthURL, "application/x-www-form-urlencoded", strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao renovar access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro renovando access token. Status: %d, Resposta: %s", resp.StatusCode, string(body))

		// invalid_grant significa refresh token revogado ou expirado, a conta
		// precisa ser reautorizada manualmente
		if strings.Contains(string(body), "invalid_grant") {
			return nil, fmt.Errorf("refresh token inválido ou revogado, é necessário reautorizar a conta: status %d", resp.StatusCode)
		}

		return nil, fmt.Errorf("erro ao renovar access token. Status: %d, Resposta: %s", resp.StatusCode, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// CalculateTokenExpiration calcula o instante de expiração com uma margem de
// segurança de um minuto
func CalculateTokenExpiration(expiresIn int64) time.Time {
	if expiresIn <= 60 {
		return time.Now()
	}
	return time.Now().Add(time.Duration(expiresIn-60) * time.Second)
}
