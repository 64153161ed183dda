package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/reporting"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func ReportTemplates(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.ListTemplates())
	})
}

func GenerateReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReport")

		var req domain.GenerateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if details := req.Validate(); len(details) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, strings.Join(details, "; "), details)
			return
		}

		report, err := service.Generate(&req)
		if err != nil {
			logrus.Error("Error generating report:", err)

			if errors.Is(err, reporting.ErrTemplateNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Template de relatório não encontrado", map[string]any{
					"template_id": req.TemplateID,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(report)
	})
}

// GetReport resolve GET /api/reports/:id. O httprouter não aceita rota
// estática ao lado de parâmetro no mesmo segmento, então o id reservado
// "templates" é atendido aqui.
func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if id == "templates" {
			ReportTemplates(service).ServeHTTP(w, r)
			return
		}

		report, err := service.GetReport(id)
		if err != nil {
			logrus.Error("Error fetching report:", err)

			if errors.Is(err, reporting.ErrReportNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Relatório não encontrado", map[string]any{
					"report_id": id,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})
}

func ListReports(service reporting.Reporter) http.Handler {
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

		reports, err := service.ListReports(limit)
		if err != nil {
			logrus.Error("Error listing reports:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar relatórios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reports)
	})
}
