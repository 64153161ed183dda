package domain

import "time"

type CampaignStatus string

const (
	CampaignStatusEnabled CampaignStatus = "ENABLED"
	CampaignStatusPaused  CampaignStatus = "PAUSED"
	CampaignStatusRemoved CampaignStatus = "REMOVED"
)

// Campaign é o espelho local de uma campanha do Google Ads. Recalculado por
// inteiro a cada sincronização, sem atualização incremental.
type Campaign struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Status     CampaignStatus  `json:"status"`
	Budget     float64         `json:"budget"`
	Metrics    *AccountMetrics `json:"metrics"`
	SyncedAt   time.Time       `json:"synced_at"`
}

// TopCampaign é uma campanha anotada com a conta de origem, usada no ranking
// do dashboard
type TopCampaign struct {
	Campaign    *Campaign `json:"campaign"`
	AccountID   string    `json:"account_id"`
	AccountName string    `json:"account_name"`
}
