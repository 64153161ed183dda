package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/account"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filterStatus := r.URL.Query().Get("status")

		availableStatus := make([]domain.AdAccountStatus, 0)
		if filterStatus != "" {
			for _, status := range strings.Split(filterStatus, ",") {
				availableStatus = append(availableStatus, domain.AdAccountStatus(status))
			}
		}

		adAccounts, err := service.ListAdAccounts(availableStatus)
		if err != nil {
			logrus.Error("Error listing accounts:", err)
			writeAccountError(w, err, "Erro ao listar contas")
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(adAccounts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		adAccount, err := service.GetAccount(id)
		if err != nil {
			logrus.Error("Error getting account:", err)
			writeAccountError(w, err, "Erro ao consultar conta")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(adAccount)
	})
}

func CreateAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateAdAccount")

		var req domain.CreateAdAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		adAccount, err := service.CreateAccount(&req)
		if err != nil {
			logrus.Error("Error creating account:", err)
			writeAccountError(w, err, "Erro ao cadastrar conta")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(adAccount)
	})
}

func UpdateAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAdAccount")

		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var updateRequest domain.UpdateAdAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		// Garante que o ID da URL seja usado
		updateRequest.ID = id

		adAccount, err := service.UpdateAccount(&updateRequest)
		if err != nil {
			logrus.Error("Error updating account:", err)
			writeAccountError(w, err, "Erro ao atualizar conta")
			return
		}

		json.NewEncoder(w).Encode(adAccount)
	})
}

func DeleteAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteAdAccount")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteAccount(id); err != nil {
			logrus.Error("Error deleting account:", err)
			writeAccountError(w, err, "Erro ao remover conta")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// SyncAdAccount dispara a sincronização de campanhas de uma única conta
func SyncAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAdAccount")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		count, err := service.SyncAccount(r.Context(), id)
		if err != nil {
			logrus.Error("Error syncing account:", err)
			writeAccountError(w, err, "Erro ao sincronizar conta")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"account_id": id,
			"campaigns":  count,
		})
	})
}

func AdAccountCampaigns(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaigns, err := service.ListCampaigns(id)
		if err != nil {
			logrus.Error("Error listing campaigns:", err)
			writeAccountError(w, err, "Erro ao listar campanhas")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	})
}

// writeAccountError converte erros do usecase de contas para o envelope da API
func writeAccountError(w http.ResponseWriter, err error, fallback string) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		var details any
		if accountErr.AccountID != "" {
			details = map[string]any{"account_id": accountErr.AccountID}
		}
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}
