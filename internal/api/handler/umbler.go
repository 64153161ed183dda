package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/ingesting"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UmblerWebhook recebe os callbacks do provedor. Rota pública: o provedor
// não autentica via JWT do painel.
func UmblerWebhook(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload domain.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload do webhook inválido: "+err.Error(), nil)
			return
		}

		event, err := service.ProcessWebhook(&payload)
		if err != nil {
			logrus.Error("Error processing webhook:", err)

			switch {
			case errors.Is(err, ingesting.ErrUnknownEventType),
				errors.Is(err, ingesting.ErrMissingEventData),
				errors.Is(err, ingesting.ErrMissingEntityID):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Evento do webhook inválido: "+err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrWebhookProcessing, "Erro ao processar evento do webhook", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "processed",
			"event_type": event.Type,
			"event_id":   event.EventID,
		})
	})
}

func ListContacts(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := &domain.ContactFilters{
			Status: domain.ContactStatus(query.Get("status")),
			Tag:    query.Get("tag"),
			Search: query.Get("search"),
		}
		filters.Limit, filters.Offset = parsePagination(query.Get("limit"), query.Get("offset"))

		contacts, err := service.ListContacts(filters)
		if err != nil {
			logrus.Error("Error listing contacts:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar contatos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contacts)
	})
}

func GetContact(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		contact, err := service.GetContact(id)
		if err != nil {
			if errors.Is(err, repository.ErrContactNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Contato não encontrado", map[string]any{"contact_id": id})
				return
			}

			logrus.Error("Error fetching contact:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contato", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contact)
	})
}

func SaveContact(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var contact domain.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		// No PUT o ID vem da URL
		if id := httprouter.ParamsFromContext(r.Context()).ByName("id"); id != "" {
			contact.ID = id
		}

		if err := service.SaveContact(&contact); err != nil {
			logrus.Error("Error saving contact:", err)

			if errors.Is(err, ingesting.ErrMissingEntityID) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do contato é obrigatório", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar contato", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&contact)
	})
}

func DeleteContact(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteContact(id); err != nil {
			if errors.Is(err, repository.ErrContactNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Contato não encontrado", map[string]any{"contact_id": id})
				return
			}

			logrus.Error("Error deleting contact:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover contato", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ListMessages(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := &domain.MessageFilters{
			ConversationID: query.Get("conversation_id"),
			ContactID:      query.Get("contact_id"),
			Direction:      domain.MessageDirection(query.Get("direction")),
			Status:         domain.MessageStatus(query.Get("status")),
		}
		filters.Limit, filters.Offset = parsePagination(query.Get("limit"), query.Get("offset"))

		messages, err := service.ListMessages(filters)
		if err != nil {
			logrus.Error("Error listing messages:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar mensagens", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	})
}

func SaveMessage(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var message domain.Message
		if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.SaveMessage(&message); err != nil {
			logrus.Error("Error saving message:", err)

			if errors.Is(err, ingesting.ErrMissingEntityID) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da mensagem é obrigatório", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar mensagem", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&message)
	})
}

func UpdateMessageStatus(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req struct {
			Status domain.MessageStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.UpdateMessageStatus(id, req.Status); err != nil {
			if errors.Is(err, repository.ErrMessageNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Mensagem não encontrada", map[string]any{"message_id": id})
				return
			}

			logrus.Error("Error updating message status:", err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao atualizar status da mensagem: "+err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ListConversations(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := &domain.ConversationFilters{
			ContactID: query.Get("contact_id"),
			Status:    domain.ConversationStatus(query.Get("status")),
		}
		filters.Limit, filters.Offset = parsePagination(query.Get("limit"), query.Get("offset"))

		conversations, err := service.ListConversations(filters)
		if err != nil {
			logrus.Error("Error listing conversations:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar conversas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conversations)
	})
}

func GetConversation(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		conversation, err := service.GetConversation(id)
		if err != nil {
			if errors.Is(err, repository.ErrConversationNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conversa não encontrada", map[string]any{"conversation_id": id})
				return
			}

			logrus.Error("Error fetching conversation:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar conversa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conversation)
	})
}

func UpdateConversationStatus(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req struct {
			Status domain.ConversationStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.UpdateConversationStatus(id, req.Status); err != nil {
			if errors.Is(err, repository.ErrConversationNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conversa não encontrada", map[string]any{"conversation_id": id})
				return
			}

			logrus.Error("Error updating conversation status:", err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao atualizar status da conversa: "+err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func UmblerHealth(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.Health())
	})
}

// UmblerAuditLog expõe o log de auditoria em memória da ingestão
func UmblerAuditLog(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.AuditEntries())
	})
}

func parsePagination(rawLimit, rawOffset string) (limit int, offset int) {
	if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
		limit = parsed
	}
	if parsed, err := strconv.Atoi(rawOffset); err == nil && parsed > 0 {
		offset = parsed
	}
	return limit, offset
}
