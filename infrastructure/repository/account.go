package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const accountsTable = "ad_accounts"

var accountColumns = []string{
	"id", "name", "customer_id", "status", "sync_enabled",
	"client_id", "client_secret", "refresh_token", "access_token",
	"developer_token", "token_expires_at", "last_sync_at",
	"created_at", "updated_at",
}

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.AdAccount, error)
	GetAccountByCustomerID(customerID string) (*domain.AdAccount, error)
	ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	Create(account *domain.AdAccount) error
	UpdateAccount(req *domain.UpdateAdAccountRequest) error
	UpdateCredentials(accountID string, creds *domain.AdAccountCredentials) error
	UpdateLastSync(accountID string, syncedAt time.Time) error
	Delete(accountID string) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.AdAccount, error) {
	return a.getAccount(squirrel.Eq{"id": accountID})
}

func (a *accountRepository) GetAccountByCustomerID(customerID string) (*domain.AdAccount, error) {
	return a.getAccount(squirrel.Eq{"customer_id": customerID})
}

func (a *accountRepository) getAccount(whereClause map[string]interface{}) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := a.conn.QueryRow(accountsSQL, accountsArgs...)

	acc, err := deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)

	for rows.Next() {
		acc, err := deserializeAccountRows(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) Create(account *domain.AdAccount) error {
	query := squirrel.StatementBuilder.
		Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Name,
			account.CustomerID,
			account.Status,
			account.SyncEnabled,
			account.Credentials.ClientID,
			account.Credentials.ClientSecret,
			account.Credentials.RefreshToken,
			account.Credentials.AccessToken,
			account.Credentials.DeveloperToken,
			account.Credentials.TokenExpiresAt,
			account.LastSyncAt,
			account.CreatedAt,
			account.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = a.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (a *accountRepository) UpdateAccount(req *domain.UpdateAdAccountRequest) error {
	if req.ID == "" {
		return errors.New("ID is required")
	}

	queryBuilder := squirrel.
		Update(accountsTable).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": req.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}

	if req.Status != nil {
		queryBuilder = queryBuilder.Set("status", *req.Status)
	}

	if req.RefreshToken != nil {
		queryBuilder = queryBuilder.Set("refresh_token", *req.RefreshToken)
	}

	if req.SyncEnabled != nil {
		queryBuilder = queryBuilder.Set("sync_enabled", *req.SyncEnabled)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (a *accountRepository) UpdateCredentials(accountID string, creds *domain.AdAccountCredentials) error {
	sqlQuery, args, err := squirrel.
		Update(accountsTable).
		Set("access_token", creds.AccessToken).
		Set("refresh_token", creds.RefreshToken).
		Set("token_expires_at", creds.TokenExpiresAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (a *accountRepository) UpdateLastSync(accountID string, syncedAt time.Time) error {
	sqlQuery, args, err := squirrel.
		Update(accountsTable).
		Set("last_sync_at", syncedAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = a.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (a *accountRepository) Delete(accountID string) error {
	sqlQuery, args, err := squirrel.
		Delete(accountsTable).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.CustomerID,
		&acc.Status,
		&acc.SyncEnabled,
		&acc.Credentials.ClientID,
		&acc.Credentials.ClientSecret,
		&acc.Credentials.RefreshToken,
		&acc.Credentials.AccessToken,
		&acc.Credentials.DeveloperToken,
		&acc.Credentials.TokenExpiresAt,
		&acc.LastSyncAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func deserializeAccount(row *sql.Row) (*domain.AdAccount, error) {
	return scanAccount(row)
}

func deserializeAccountRows(rows *sql.Rows) (*domain.AdAccount, error) {
	return scanAccount(rows)
}
