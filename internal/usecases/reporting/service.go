package reporting

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrTemplateNotFound = errors.New("report template not found")
	ErrReportNotFound   = errors.New("report not found")
)

// Reporter gera relatórios parametrizados a partir dos templates fixos
type Reporter interface {
	ListTemplates() []*domain.ReportTemplate
	Generate(req *domain.GenerateReportRequest) (*domain.Report, error)
	GetReport(reportID string) (*domain.Report, error)
	ListReports(limit int) ([]*domain.Report, error)
}

type Service struct {
	accountRepo repository.AccountRepository
	reportRepo  repository.ReportRepository
	integrator  googleads.Integrator
	cfg         *config.Config
}

func NewService(
	accountRepo repository.AccountRepository,
	reportRepo repository.ReportRepository,
	integrator googleads.Integrator,
	cfg *config.Config,
) Reporter {
	return &Service{
		accountRepo: accountRepo,
		reportRepo:  reportRepo,
		integrator:  integrator,
		cfg:         cfg,
	}
}

func (s *Service) ListTemplates() []*domain.ReportTemplate {
	return ListTemplates()
}

// Generate monta o relatório: coleta as linhas da fonte de dados do template
// em todas as contas ativas, aplica filtros, ordenação e limite, e resume os
// campos numéricos. O relatório gerado é persistido
func (s *Service) Generate(req *domain.GenerateReportRequest) (*domain.Report, error) {
	template := FindTemplate(req.TemplateID)
	if template == nil {
		return nil, errors.Wrapf(ErrTemplateNotFound, "template %s", req.TemplateID)
	}

	reportConfig := req.Config
	if reportConfig == nil {
		reportConfig = &domain.ReportConfig{}
	}

	filters := &domain.MetricFilters{
		StartDate: reportConfig.StartDate,
		EndDate:   reportConfig.EndDate,
	}
	filters.Normalize(time.Now())
	reportConfig.StartDate = filters.StartDate
	reportConfig.EndDate = filters.EndDate

	rows, err := s.collectRows(template, filters)
	if err != nil {
		return nil, err
	}

	rows = applyFilters(rows, reportConfig.Filters)
	sortRows(rows, reportConfig.SortBy, reportConfig.SortOrder)

	if reportConfig.Limit > 0 && len(rows) > reportConfig.Limit {
		rows = rows[:reportConfig.Limit]
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}

	reportID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:          reportID,
		TemplateID:  template.ID,
		Name:        name,
		Config:      reportConfig,
		Rows:        rows,
		RowCount:    len(rows),
		Summary:     summarize(rows, template.Fields),
		GeneratedAt: time.Now(),
	}

	if err := s.reportRepo.Save(report); err != nil {
		logrus.WithFields(logrus.Fields{
			"report_id": report.ID,
			"error":     err.Error(),
		}).Error("reports: failed to persist generated report")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"template_id": template.ID,
		"row_count":   report.RowCount,
	}).Info("reports: report generated")

	return report, nil
}

func (s *Service) GetReport(reportID string) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.Wrapf(ErrReportNotFound, "relatório %s", reportID)
	}
	return report, nil
}

func (s *Service) ListReports(limit int) ([]*domain.Report, error) {
	return s.reportRepo.List(limit)
}

// collectRows busca as linhas da fonte de dados em todas as contas ativas.
// Cada linha é marcada com a conta de origem
func (s *Service) collectRows(template *domain.ReportTemplate, filters *domain.MetricFilters) ([]domain.ReportRow, error) {
	accounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return nil, err
	}

	maxConcurrent := s.cfg.Dashboard.AggregateWorkers
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	rows := make([]domain.ReportRow, 0)

	for _, account := range accounts {
		wg.Add(1)

		go func(acc *domain.AdAccount) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			accountRows, err := s.accountRows(template, acc, filters)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id":  acc.ID,
					"template_id": template.ID,
					"error":       err.Error(),
				}).Error("reports: failed to collect rows for account, skipping")
				return
			}

			mutex.Lock()
			rows = append(rows, accountRows...)
			mutex.Unlock()
		}(account)
	}

	wg.Wait()

	return rows, nil
}

func (s *Service) accountRows(template *domain.ReportTemplate, account *domain.AdAccount, filters *domain.MetricFilters) ([]domain.ReportRow, error) {
	switch template.DataSource {
	case domain.ReportSourceCampaigns:
		campaigns, err := s.integrator.GetCampaigns(account, filters)
		if err != nil {
			return nil, err
		}

		rows := make([]domain.ReportRow, 0, len(campaigns))
		for _, campaign := range campaigns {
			row := domain.ReportRow{
				"account_id":    account.ID,
				"account_name":  account.Name,
				"campaign_id":   campaign.ExternalID,
				"campaign_name": campaign.Name,
				"status":        string(campaign.Status),
			}
			addMetrics(row, campaign.Metrics)
			rows = append(rows, row)
		}
		return rows, nil

	case domain.ReportSourceKeywords:
		keywords, err := s.integrator.GetKeywords(account, filters)
		if err != nil {
			return nil, err
		}

		rows := make([]domain.ReportRow, 0, len(keywords))
		for _, keyword := range keywords {
			row := domain.ReportRow{
				"account_id":    account.ID,
				"account_name":  account.Name,
				"campaign_name": keyword.CampaignName,
				"keyword":       keyword.Text,
				"match_type":    keyword.MatchType,
			}
			addMetrics(row, keyword.Metrics)
			rows = append(rows, row)
		}
		return rows, nil

	case domain.ReportSourceGeographic:
		entries, err := s.integrator.GetGeographic(account, filters)
		if err != nil {
			return nil, err
		}

		rows := make([]domain.ReportRow, 0, len(entries))
		for _, entry := range entries {
			row := domain.ReportRow{
				"account_id":    account.ID,
				"account_name":  account.Name,
				"location_id":   entry.LocationID,
				"location_name": entry.LocationName,
				"country_code":  entry.CountryCode,
			}
			addMetrics(row, entry.Metrics)
			rows = append(rows, row)
		}
		return rows, nil

	case domain.ReportSourceMetrics:
		metrics, err := s.integrator.GetAccountMetrics(account, filters)
		if err != nil {
			return nil, err
		}

		row := domain.ReportRow{
			"account_id":   account.ID,
			"account_name": account.Name,
		}
		addMetrics(row, metrics)
		return []domain.ReportRow{row}, nil
	}

	return nil, fmt.Errorf("fonte de dados desconhecida: %s", template.DataSource)
}

func addMetrics(row domain.ReportRow, metrics *domain.AccountMetrics) {
	if metrics == nil {
		metrics = &domain.AccountMetrics{}
	}

	row["impressions"] = metrics.Impressions
	row["clicks"] = metrics.Clicks
	row["cost"] = metrics.Cost
	row["conversions"] = metrics.Conversions
	row["conversion_value"] = metrics.ConversionValue
	row["ctr"] = metrics.CTR
	row["cpc"] = metrics.CPC
	row["roas"] = metrics.ROAS
	row["conversion_rate"] = metrics.ConversionRate
}

// applyFilters mantém apenas as linhas cujos campos contêm o valor filtrado
// (comparação por substring, sem diferenciar maiúsculas)
func applyFilters(rows []domain.ReportRow, filters map[string]string) []domain.ReportRow {
	if len(filters) == 0 {
		return rows
	}

	filtered := make([]domain.ReportRow, 0, len(rows))

	for _, row := range rows {
		matches := true
		for field, wanted := range filters {
			value, ok := row[field]
			if !ok {
				matches = false
				break
			}

			text := fmt.Sprintf("%v", value)
			if !strings.Contains(strings.ToLower(text), strings.ToLower(wanted)) {
				matches = false
				break
			}
		}

		if matches {
			filtered = append(filtered, row)
		}
	}

	return filtered
}

// sortRows ordena por um único campo. Campos numéricos comparam como número,
// o resto compara como texto
func sortRows(rows []domain.ReportRow, sortBy string, order domain.SortOrder) {
	if sortBy == "" {
		return
	}

	desc := order == domain.SortDesc

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := rows[i][sortBy], rows[j][sortBy]

		ni, okI := numericValue(vi)
		nj, okJ := numericValue(vj)

		var less bool
		if okI && okJ {
			less = ni < nj
		} else {
			less = fmt.Sprintf("%v", vi) < fmt.Sprintf("%v", vj)
		}

		if desc {
			return !less && !equalValues(vi, vj)
		}
		return less
	})
}

func equalValues(a, b any) bool {
	na, okA := numericValue(a)
	nb, okB := numericValue(b)
	if okA && okB {
		return na == nb
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// summarize calcula total, média, mínimo e máximo de cada campo numérico do
// template presente nas linhas
func summarize(rows []domain.ReportRow, fields []string) map[string]*domain.FieldSummary {
	summary := make(map[string]*domain.FieldSummary)

	for _, field := range fields {
		var total, min, max float64
		count := 0

		for _, row := range rows {
			value, ok := numericValue(row[field])
			if !ok {
				continue
			}

			if count == 0 || value < min {
				min = value
			}
			if count == 0 || value > max {
				max = value
			}
			total += value
			count++
		}

		if count == 0 {
			continue
		}

		summary[field] = &domain.FieldSummary{
			Total:   utils.RoundWithTwoDecimalPlace(total),
			Average: utils.RoundWithTwoDecimalPlace(total / float64(count)),
			Min:     min,
			Max:     max,
		}
	}

	return summary
}
