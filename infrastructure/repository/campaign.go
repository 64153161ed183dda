package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	// ReplaceForAccount substitui por completo o espelho de campanhas da
	// conta. A sincronização recalcula tudo, não há atualização incremental.
	ReplaceForAccount(ctx context.Context, accountID string, campaigns []*domain.Campaign) error
	ListByAccount(accountID string) ([]*domain.Campaign, error)
	ListAll() ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) ReplaceForAccount(ctx context.Context, accountID string, campaigns []*domain.Campaign) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, deleteArgs, err := squirrel.
			Delete(campaignsTable).
			Where(squirrel.Eq{"account_id": accountID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete query: %w", err)
		}

		if _, err := tx.Exec(deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("failed to clear campaigns: %w", err)
		}

		if len(campaigns) == 0 {
			return nil
		}

		query := squirrel.StatementBuilder.
			Insert(campaignsTable).
			Columns("id", "account_id", "external_id", "name", "status", "budget", "metrics", "synced_at").
			PlaceholderFormat(squirrel.Dollar)

		for _, campaign := range campaigns {
			metricsJSON, err := json.Marshal(campaign.Metrics)
			if err != nil {
				return fmt.Errorf("failed to serialize metrics: %w", err)
			}

			query = query.Values(
				campaign.ID,
				accountID,
				campaign.ExternalID,
				campaign.Name,
				campaign.Status,
				campaign.Budget,
				metricsJSON,
				campaign.SyncedAt,
			)
		}

		insertSQL, insertArgs, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert query: %w", err)
		}

		if _, err := tx.Exec(insertSQL, insertArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("failed to insert campaigns: %w", err)
		}

		return nil
	})
}

func (r *campaignRepository) ListByAccount(accountID string) ([]*domain.Campaign, error) {
	return r.list(squirrel.Eq{"account_id": accountID})
}

func (r *campaignRepository) ListAll() ([]*domain.Campaign, error) {
	return r.list(nil)
}

func (r *campaignRepository) list(whereClause map[string]interface{}) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select("id", "account_id", "external_id", "name", "status", "budget", "metrics", "synced_at").
		From(campaignsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if whereClause != nil {
		queryBuilder = queryBuilder.Where(whereClause)
	}

	campaignsSQL, campaignsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(campaignsSQL, campaignsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign := &domain.Campaign{}
		var metricsJSON []byte

		if err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.ExternalID,
			&campaign.Name,
			&campaign.Status,
			&campaign.Budget,
			&metricsJSON,
			&campaign.SyncedAt,
		); err != nil {
			return nil, err
		}

		if len(metricsJSON) > 0 {
			metrics := &domain.AccountMetrics{}
			if err := json.Unmarshal(metricsJSON, metrics); err != nil {
				return nil, fmt.Errorf("failed to deserialize metrics: %w", err)
			}
			campaign.Metrics = metrics
		}

		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return campaigns, nil
}
