package domain

// GeographicEntry agrupa métricas por localização alvo das campanhas
type GeographicEntry struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	CountryCode  string          `json:"country_code"`
	Metrics      *AccountMetrics `json:"metrics"`
}
