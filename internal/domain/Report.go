package domain

import "time"

type ReportDataSource string

const (
	ReportSourceCampaigns  ReportDataSource = "campaigns"
	ReportSourceKeywords   ReportDataSource = "keywords"
	ReportSourceGeographic ReportDataSource = "geographic"
	ReportSourceMetrics    ReportDataSource = "metrics"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ReportTemplate é um conjunto nomeado e fixo de campos sobre uma fonte de
// dados, usado para moldar relatórios gerados
type ReportTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	DataSource  ReportDataSource `json:"data_source"`
	Fields      []string         `json:"fields"`
}

// ReportConfig parametriza a geração de um relatório
type ReportConfig struct {
	StartDate *time.Time        `json:"start_date"`
	EndDate   *time.Time        `json:"end_date"`
	Filters   map[string]string `json:"filters"`
	SortBy    string            `json:"sort_by"`
	SortOrder SortOrder         `json:"sort_order"`
	Limit     int               `json:"limit"`
}

// ReportRow é uma linha do relatório. Os campos dependem do template; cada
// linha é marcada com a conta de origem em "account_id"/"account_name".
type ReportRow map[string]any

// FieldSummary resume um campo numérico do relatório
type FieldSummary struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Report é um relatório gerado e persistido
type Report struct {
	ID          string                   `json:"id"`
	TemplateID  string                   `json:"template_id"`
	Name        string                   `json:"name"`
	Config      *ReportConfig            `json:"config"`
	Rows        []ReportRow              `json:"rows"`
	RowCount    int                      `json:"row_count"`
	Summary     map[string]*FieldSummary `json:"summary"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// GenerateReportRequest é o corpo do POST /api/reports
type GenerateReportRequest struct {
	TemplateID string        `json:"template_id"`
	Name       string        `json:"name"`
	Config     *ReportConfig `json:"config"`
}

// Validate verifica os campos obrigatórios da geração de relatório
func (r *GenerateReportRequest) Validate() []string {
	details := make([]string, 0)

	if r.TemplateID == "" {
		details = append(details, "template_id é obrigatório")
	}

	if r.Config != nil {
		if r.Config.Limit < 0 {
			details = append(details, "limit não pode ser negativo")
		}

		if r.Config.SortOrder != "" && r.Config.SortOrder != SortAsc && r.Config.SortOrder != SortDesc {
			details = append(details, "sort_order deve ser asc ou desc")
		}

		if r.Config.StartDate != nil && r.Config.EndDate != nil &&
			r.Config.StartDate.After(*r.Config.EndDate) {
			details = append(details, "start_date não pode ser posterior a end_date")
		}
	}

	return details
}
