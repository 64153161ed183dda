package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const reportsTable = "reports"

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Save(report *domain.Report) error
	GetByID(reportID string) (*domain.Report, error)
	// List retorna os relatórios mais recentes sem as linhas, que podem ser
	// grandes. Use GetByID para o conteúdo completo.
	List(limit int) ([]*domain.Report, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) Save(report *domain.Report) error {
	configJSON, err := json.Marshal(report.Config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	rowsJSON, err := json.Marshal(report.Rows)
	if err != nil {
		return fmt.Errorf("failed to serialize rows: %w", err)
	}

	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(reportsTable).
		Columns("id", "template_id", "name", "config", "rows", "row_count", "summary", "generated_at").
		Values(
			report.ID,
			report.TemplateID,
			report.Name,
			configJSON,
			rowsJSON,
			report.RowCount,
			summaryJSON,
			report.GeneratedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *reportRepository) GetByID(reportID string) (*domain.Report, error) {
	reportSQL, reportArgs, err := squirrel.
		Select("id", "template_id", "name", "config", "rows", "row_count", "summary", "generated_at").
		From(reportsTable).
		Where(squirrel.Eq{"id": reportID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(reportSQL, reportArgs...)

	report := &domain.Report{}
	var configJSON, rowsJSON, summaryJSON []byte

	if err := row.Scan(
		&report.ID,
		&report.TemplateID,
		&report.Name,
		&configJSON,
		&rowsJSON,
		&report.RowCount,
		&summaryJSON,
		&report.GeneratedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(configJSON, &report.Config); err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}

	if err := json.Unmarshal(rowsJSON, &report.Rows); err != nil {
		return nil, fmt.Errorf("failed to deserialize rows: %w", err)
	}

	if err := json.Unmarshal(summaryJSON, &report.Summary); err != nil {
		return nil, fmt.Errorf("failed to deserialize summary: %w", err)
	}

	return report, nil
}

func (r *reportRepository) List(limit int) ([]*domain.Report, error) {
	queryBuilder := squirrel.
		Select("id", "template_id", "name", "config", "row_count", "generated_at").
		From(reportsTable).
		OrderBy("generated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	reportsSQL, reportsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(reportsSQL, reportsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)

	for rows.Next() {
		report := &domain.Report{}
		var configJSON []byte

		if err := rows.Scan(
			&report.ID,
			&report.TemplateID,
			&report.Name,
			&configJSON,
			&report.RowCount,
			&report.GeneratedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(configJSON, &report.Config); err != nil {
			return nil, fmt.Errorf("failed to deserialize config: %w", err)
		}

		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return reports, nil
}
