package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/aggregating"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// parseMetricFilters monta os filtros de período a partir da query string.
// Datas no formato YYYY-MM-DD.
func parseMetricFilters(r *http.Request) (*domain.MetricFilters, error) {
	filters := &domain.MetricFilters{}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.Wrap(err, "start_date inválido")
		}
		filters.StartDate = start
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.Wrap(err, "end_date inválido")
		}
		filters.EndDate = end
	}

	return filters, nil
}

func DashboardOverview(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseMetricFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		overview, err := service.GetOverview(filters)
		if err != nil {
			logrus.Error("Error building dashboard overview:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar visão geral do dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(overview)
	})
}

func DashboardPerformance(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseMetricFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		series, err := service.GetPerformance(filters)
		if err != nil {
			logrus.Error("Error building performance series:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar série de desempenho", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(series)
	})
}

func DashboardTopCampaigns(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit inválido", nil)
				return
			}
			limit = parsed
		}

		campaigns, err := service.GetTopCampaigns(limit)
		if err != nil {
			logrus.Error("Error listing top campaigns:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar campanhas de maior investimento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	})
}

func DashboardAlerts(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alerts, err := service.GetAlerts()
		if err != nil {
			logrus.Error("Error listing alerts:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar alertas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alerts)
	})
}

func AccountMetrics(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		filters, err := parseMetricFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		metrics, err := service.GetAccountMetrics(id, filters)
		if err != nil {
			logrus.Error("Error fetching account metrics:", err)
			writeAccountScopedError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	})
}

func AccountKeywords(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		filters, err := parseMetricFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		keywords, err := service.GetKeywords(id, filters)
		if err != nil {
			logrus.Error("Error fetching account keywords:", err)
			writeAccountScopedError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(keywords)
	})
}

func AccountGeographic(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		filters, err := parseMetricFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		entries, err := service.GetGeographic(id, filters)
		if err != nil {
			logrus.Error("Error fetching account geographic data:", err)
			writeAccountScopedError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	})
}

// writeAccountScopedError responde 404 para conta inexistente e erro de
// serviço externo para falhas na API do Google Ads
func writeAccountScopedError(w http.ResponseWriter, err error, accountID string) {
	if errors.Is(err, repository.ErrAccountNotFound) {
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conta não encontrada", map[string]any{
			"account_id": accountID,
		})
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar dados no Google Ads", nil)
}
