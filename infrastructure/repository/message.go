package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const messagesTable = "messages"

var messageColumns = []string{
	"id", "conversation_id", "contact_id", "content", "direction", "status",
	"timestamp", "metadata", "created_at", "updated_at",
}

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	GetByID(messageID string) (*domain.Message, error)
	List(filters *domain.MessageFilters) ([]*domain.Message, error)
	Upsert(message *domain.Message) error
	UpdateStatus(messageID string, status domain.MessageStatus) error
}

type messageRepository struct {
	conn *postgres.Connection
}

func NewMessageRepository(conn *postgres.Connection) MessageRepository {
	return &messageRepository{
		conn: conn,
	}
}

func (r *messageRepository) GetByID(messageID string) (*domain.Message, error) {
	messageSQL, messageArgs, err := squirrel.
		Select(messageColumns...).
		From(messagesTable).
		Where(squirrel.Eq{"id": messageID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(messageSQL, messageArgs...)

	message, err := scanMessage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return message, nil
}

func (r *messageRepository) List(filters *domain.MessageFilters) ([]*domain.Message, error) {
	queryBuilder := squirrel.
		Select(messageColumns...).
		From(messagesTable).
		OrderBy("timestamp DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.ConversationID != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"conversation_id": filters.ConversationID})
		}

		if filters.ContactID != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"contact_id": filters.ContactID})
		}

		if filters.Direction != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"direction": filters.Direction})
		}

		if filters.Status != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filters.Status})
		}

		if filters.Limit > 0 {
			queryBuilder = queryBuilder.Limit(uint64(filters.Limit))
		}

		if filters.Offset > 0 {
			queryBuilder = queryBuilder.Offset(uint64(filters.Offset))
		}
	}

	messagesSQL, messagesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(messagesSQL, messagesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)

	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}

		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) Upsert(message *domain.Message) error {
	metadataJSON, err := json.Marshal(message.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(messagesTable).
		Columns(messageColumns...).
		Values(
			message.ID,
			message.ConversationID,
			message.ContactID,
			message.Content,
			message.Direction,
			message.Status,
			message.Timestamp,
			metadataJSON,
			message.CreatedAt,
			message.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				metadata = EXCLUDED.metadata,
				updated_at = EXCLUDED.updated_at
		`)

	sqlQuery, args, err := query.ToSql()
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

func (r *messageRepository) UpdateStatus(messageID string, status domain.MessageStatus) error {
	sqlQuery, args, err := squirrel.
		Update(messagesTable).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": messageID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	message := &domain.Message{}
	var metadataJSON []byte

	if err := row.Scan(
		&message.ID,
		&message.ConversationID,
		&message.ContactID,
		&message.Content,
		&message.Direction,
		&message.Status,
		&message.Timestamp,
		&metadataJSON,
		&message.CreatedAt,
		&message.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &message.Metadata); err != nil {
			return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
		}
	}

	return message, nil
}
