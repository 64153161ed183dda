package reporting

import "github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

// Templates fixos do painel. Novos relatórios nascem de um destes conjuntos
// de campos, o cliente só parametriza período, filtros, ordenação e limite
var reportTemplates = []*domain.ReportTemplate{
	{
		ID:          "campaign_performance",
		Name:        "Desempenho de campanhas",
		Description: "Campanhas de todas as contas com custo, cliques e conversões no período",
		DataSource:  domain.ReportSourceCampaigns,
		Fields:      []string{"account_id", "account_name", "campaign_id", "campaign_name", "status", "impressions", "clicks", "cost", "conversions", "conversion_value", "ctr", "cpc", "roas"},
	},
	{
		ID:          "keyword_performance",
		Name:        "Desempenho de palavras-chave",
		Description: "Palavras-chave de todas as contas com as métricas do período",
		DataSource:  domain.ReportSourceKeywords,
		Fields:      []string{"account_id", "account_name", "campaign_name", "keyword", "match_type", "impressions", "clicks", "cost", "conversions", "ctr", "cpc"},
	},
	{
		ID:          "geographic_performance",
		Name:        "Desempenho por localização",
		Description: "Métricas agrupadas por localização alvo das campanhas",
		DataSource:  domain.ReportSourceGeographic,
		Fields:      []string{"account_id", "account_name", "location_id", "location_name", "country_code", "impressions", "clicks", "cost", "conversions"},
	},
	{
		ID:          "account_metrics",
		Name:        "Totais por conta",
		Description: "Métricas consolidadas de cada conta no período",
		DataSource:  domain.ReportSourceMetrics,
		Fields:      []string{"account_id", "account_name", "impressions", "clicks", "cost", "conversions", "conversion_value", "ctr", "cpc", "roas", "conversion_rate"},
	},
}

// ListTemplates retorna os templates disponíveis
func ListTemplates() []*domain.ReportTemplate {
	return reportTemplates
}

// FindTemplate busca um template pelo ID. Retorna nil quando não existe
func FindTemplate(templateID string) *domain.ReportTemplate {
	for _, template := range reportTemplates {
		if template.ID == templateID {
			return template
		}
	}
	return nil
}
