package domain

import (
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"
)

// MetricFilters define o período consultado. Datas nulas ou zero assumem os
// últimos 30 dias.
type MetricFilters struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Normalize preenche o período default (últimos 30 dias, até ontem)
func (f *MetricFilters) Normalize(now time.Time) {
	if f.EndDate == nil || f.EndDate.IsZero() {
		end := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
		f.EndDate = &end
	}
	if f.StartDate == nil || f.StartDate.IsZero() {
		start := f.EndDate.AddDate(0, 0, -29)
		f.StartDate = &start
	}
}

// AccountMetrics agrega os números de uma conta (ou de várias, quando somadas)
type AccountMetrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Cost            float64 `json:"cost"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`

	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	ROAS           float64 `json:"roas"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Add soma os campos brutos de outra métrica (os derivados são recalculados
// depois via DeriveRatios)
func (m *AccountMetrics) Add(other *AccountMetrics) {
	if other == nil {
		return
	}

	m.Impressions += other.Impressions
	m.Clicks += other.Clicks
	m.Cost += other.Cost
	m.Conversions += other.Conversions
	m.ConversionValue += other.ConversionValue
}

// DeriveRatios calcula CTR, CPC, ROAS e taxa de conversão. Denominador zero
// resulta em 0, nunca NaN ou Inf.
func (m *AccountMetrics) DeriveRatios() {
	m.CTR = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(float64(m.Clicks), float64(m.Impressions)) * 100)
	m.CPC = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(m.Cost, float64(m.Clicks)))
	m.ROAS = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(m.ConversionValue, m.Cost))
	m.ConversionRate = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(m.Conversions, float64(m.Clicks)) * 100)
}

// FailedAccount identifica uma conta cuja consulta falhou durante a agregação
type FailedAccount struct {
	AccountID  string `json:"account_id"`
	CustomerID string `json:"customer_id"`
	Error      string `json:"error"`
}

// DashboardOverview é a resposta do endpoint de visão geral: totais somados
// entre contas mais o relatório explícito de falhas parciais
type DashboardOverview struct {
	Metrics         *AccountMetrics  `json:"metrics"`
	AccountCount    int              `json:"account_count"`
	AccountsQueried int              `json:"accounts_queried"`
	FailedAccounts  []*FailedAccount `json:"failed_accounts"`
	Filters         *MetricFilters   `json:"filters"`
}

// PerformancePoint é um ponto da série temporal de performance
type PerformancePoint struct {
	Date    string          `json:"date"`
	Metrics *AccountMetrics `json:"metrics"`
}

// AlertSeverity indica a gravidade de um alerta do dashboard
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// Alert é um aviso exibido no dashboard
type Alert struct {
	Type      string        `json:"type"`
	Severity  AlertSeverity `json:"severity"`
	AccountID string        `json:"account_id,omitempty"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}
