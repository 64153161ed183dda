package domain

import "time"

type ContactStatus string

const (
	ContactStatusActive   ContactStatus = "active"
	ContactStatusInactive ContactStatus = "inactive"
	ContactStatusPending  ContactStatus = "pending"
	ContactStatusBlocked  ContactStatus = "blocked"
)

// ValidContactStatus verifica se o status informado é conhecido
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusActive, ContactStatusInactive, ContactStatusPending, ContactStatusBlocked:
		return true
	}
	return false
}

// Contact é um contato do painel Umbler, criado ou atualizado por webhook ou
// manualmente via CRUD
type Contact struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email"`
	Status          ContactStatus  `json:"status"`
	Tags            []string       `json:"tags"`
	LastInteraction *time.Time     `json:"last_interaction,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`

	// Sequence é o número de versão monotônico enviado pelo provedor do
	// webhook. Atualizações com sequence menor que o valor armazenado são
	// descartadas como atrasadas. Zero desliga a proteção.
	Sequence int64 `json:"sequence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactFilters filtra a listagem de contatos
type ContactFilters struct {
	Status ContactStatus
	Tag    string
	Search string
	Limit  int
	Offset int
}
