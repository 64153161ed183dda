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

const contactsTable = "contacts"

var contactColumns = []string{
	"id", "name", "phone", "email", "status", "tags", "last_interaction",
	"metadata", "sequence", "created_at", "updated_at",
}

var ErrContactNotFound = errors.New("contact not found")

type ContactRepository interface {
	GetByID(contactID string) (*domain.Contact, error)
	List(filters *domain.ContactFilters) ([]*domain.Contact, error)
	// Upsert insere ou sobrescreve o contato por inteiro (sem merge parcial).
	// Quando ambos os lados têm sequence > 0, atualizações com sequence
	// menor que o armazenado são ignoradas como entregas atrasadas.
	Upsert(contact *domain.Contact) error
	Delete(contactID string) error
}

type contactRepository struct {
	conn *postgres.Connection
}

func NewContactRepository(conn *postgres.Connection) ContactRepository {
	return &contactRepository{
		conn: conn,
	}
}

func (r *contactRepository) GetByID(contactID string) (*domain.Contact, error) {
	contactSQL, contactArgs, err := squirrel.
		Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"id": contactID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(contactSQL, contactArgs...)

	contact, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) List(filters *domain.ContactFilters) ([]*domain.Contact, error) {
	queryBuilder := squirrel.
		Select(contactColumns...).
		From(contactsTable).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.Status != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filters.Status})
		}

		if filters.Tag != "" {
			queryBuilder = queryBuilder.Where("? = ANY(tags)", filters.Tag)
		}

		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			queryBuilder = queryBuilder.Where(
				squirrel.Or{
					squirrel.ILike{"name": pattern},
					squirrel.ILike{"phone": pattern},
					squirrel.ILike{"email": pattern},
				},
			)
		}

		if filters.Limit > 0 {
			queryBuilder = queryBuilder.Limit(uint64(filters.Limit))
		}

		if filters.Offset > 0 {
			queryBuilder = queryBuilder.Offset(uint64(filters.Offset))
		}
	}

	contactsSQL, contactsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(contactsSQL, contactsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}

		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return contacts, nil
}

func (r *contactRepository) Upsert(contact *domain.Contact) error {
	metadataJSON, err := json.Marshal(contact.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(contactsTable).
		Columns(contactColumns...).
		Values(
			contact.ID,
			contact.Name,
			contact.Phone,
			contact.Email,
			contact.Status,
			pq.Array(contact.Tags),
			contact.LastInteraction,
			metadataJSON,
			contact.Sequence,
			contact.CreatedAt,
			contact.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				phone = EXCLUDED.phone,
				email = EXCLUDED.email,
				status = EXCLUDED.status,
				tags = EXCLUDED.tags,
				last_interaction = EXCLUDED.last_interaction,
				metadata = EXCLUDED.metadata,
				sequence = EXCLUDED.sequence,
				updated_at = EXCLUDED.updated_at
			WHERE contacts.sequence = 0
				OR EXCLUDED.sequence = 0
				OR EXCLUDED.sequence >= contacts.sequence
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

func (r *contactRepository) Delete(contactID string) error {
	sqlQuery, args, err := squirrel.
		Delete(contactsTable).
		Where(squirrel.Eq{"id": contactID}).
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
		return ErrContactNotFound
	}

	return nil
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	contact := &domain.Contact{}
	var metadataJSON []byte

	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Phone,
		&contact.Email,
		&contact.Status,
		pq.Array(&contact.Tags),
		&contact.LastInteraction,
		&metadataJSON,
		&contact.Sequence,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &contact.Metadata); err != nil {
			return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
		}
	}

	return contact, nil
}
