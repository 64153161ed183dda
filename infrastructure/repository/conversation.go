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

const conversationsTable = "conversations"

var conversationColumns = []string{
	"id", "contact_id", "status", "last_message_at", "message_count",
	"created_at", "updated_at",
}

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository interface {
	GetByID(conversationID string) (*domain.Conversation, error)
	List(filters *domain.ConversationFilters) ([]*domain.Conversation, error)
	Upsert(conversation *domain.Conversation) error
	UpdateStatus(conversationID string, status domain.ConversationStatus) error
	// BumpMessageStats incrementa o contador desnormalizado de mensagens e
	// avança last_message_at. Melhor esforço: a conversa pode ainda não
	// existir quando a mensagem chega fora de ordem.
	BumpMessageStats(conversationID string, messageAt time.Time) error
}

type conversationRepository struct {
	conn *postgres.Connection
}

func NewConversationRepository(conn *postgres.Connection) ConversationRepository {
	return &conversationRepository{
		conn: conn,
	}
}

func (r *conversationRepository) GetByID(conversationID string) (*domain.Conversation, error) {
	conversationSQL, conversationArgs, err := squirrel.
		Select(conversationColumns...).
		From(conversationsTable).
		Where(squirrel.Eq{"id": conversationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(conversationSQL, conversationArgs...)

	conversation, err := scanConversation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return conversation, nil
}

func (r *conversationRepository) List(filters *domain.ConversationFilters) ([]*domain.Conversation, error) {
	queryBuilder := squirrel.
		Select(conversationColumns...).
		From(conversationsTable).
		OrderBy("last_message_at DESC NULLS LAST").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.ContactID != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"contact_id": filters.ContactID})
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

	conversationsSQL, conversationsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(conversationsSQL, conversationsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	conversations := make([]*domain.Conversation, 0)

	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, conversation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return conversations, nil
}

func (r *conversationRepository) Upsert(conversation *domain.Conversation) error {
	query := squirrel.StatementBuilder.
		Insert(conversationsTable).
		Columns(conversationColumns...).
		Values(
			conversation.ID,
			conversation.ContactID,
			conversation.Status,
			conversation.LastMessageAt,
			conversation.MessageCount,
			conversation.CreatedAt,
			conversation.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				contact_id = EXCLUDED.contact_id,
				status = EXCLUDED.status,
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

func (r *conversationRepository) UpdateStatus(conversationID string, status domain.ConversationStatus) error {
	sqlQuery, args, err := squirrel.
		Update(conversationsTable).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": conversationID}).
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
		return ErrConversationNotFound
	}

	return nil
}

func (r *conversationRepository) BumpMessageStats(conversationID string, messageAt time.Time) error {
	sqlQuery, args, err := squirrel.
		Update(conversationsTable).
		Set("message_count", squirrel.Expr("message_count + 1")).
		Set("last_message_at", squirrel.Expr("GREATEST(COALESCE(last_message_at, 'epoch'::timestamptz), ?)", messageAt)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": conversationID}).
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
		return ErrConversationNotFound
	}

	return nil
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	conversation := &domain.Conversation{}

	if err := row.Scan(
		&conversation.ID,
		&conversation.ContactID,
		&conversation.Status,
		&conversation.LastMessageAt,
		&conversation.MessageCount,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return conversation, nil
}
