package domain

import "time"

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusPaused   AdAccountStatus = "PAUSED"
	AdAccountStatusDisabled AdAccountStatus = "DISABLED"
)

// AdAccount representa uma conta do Google Ads cadastrada no painel
type AdAccount struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CustomerID string          `json:"customer_id"` // ID externo no Google Ads (sem hífens)
	Status     AdAccountStatus `json:"status"`

	Credentials AdAccountCredentials `json:"-"`
	SyncEnabled bool                 `json:"sync_enabled"`

	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AdAccountCredentials guarda as credenciais OAuth e o developer token da
// conta. Nunca serializadas em respostas da API.
type AdAccountCredentials struct {
	ClientID       string    `json:"client_id"`
	ClientSecret   string    `json:"client_secret"`
	RefreshToken   string    `json:"refresh_token"`
	AccessToken    string    `json:"access_token"`
	DeveloperToken string    `json:"developer_token"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}

// CreateAdAccountRequest é o corpo aceito no cadastro de contas
type CreateAdAccountRequest struct {
	Name           string `json:"name"`
	CustomerID     string `json:"customer_id"`
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	RefreshToken   string `json:"refresh_token"`
	DeveloperToken string `json:"developer_token"`
	SyncEnabled    *bool  `json:"sync_enabled"`
}

// UpdateAdAccountRequest é o corpo aceito na atualização parcial de contas
type UpdateAdAccountRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name"`
	Status       *AdAccountStatus `json:"status"`
	RefreshToken *string          `json:"refresh_token"`
	SyncEnabled  *bool            `json:"sync_enabled"`
}

// Validate verifica os campos obrigatórios do cadastro
func (r *CreateAdAccountRequest) Validate() []string {
	details := make([]string, 0)

	if r.Name == "" {
		details = append(details, "name é obrigatório")
	}
	if r.CustomerID == "" {
		details = append(details, "customer_id é obrigatório")
	}
	if r.ClientID == "" {
		details = append(details, "client_id é obrigatório")
	}
	if r.ClientSecret == "" {
		details = append(details, "client_secret é obrigatório")
	}
	if r.RefreshToken == "" {
		details = append(details, "refresh_token é obrigatório")
	}
	if r.DeveloperToken == "" {
		details = append(details, "developer_token é obrigatório")
	}

	return details
}
