package domain

// Keyword é uma palavra-chave retornada pela API do Google Ads com as suas
// métricas do período consultado
type Keyword struct {
	ExternalID   string          `json:"external_id"`
	CampaignID   string          `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	Text         string          `json:"text"`
	MatchType    string          `json:"match_type"`
	Metrics      *AccountMetrics `json:"metrics"`
}
