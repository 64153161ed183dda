package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/scheduler"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/apiErrors"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Tipos de cron job que podem ser disparadas manualmente
const (
	CronJobTypeTokenRefresh = "token-refresh"
	CronJobTypeCampaignSync = "campaign-sync"
	CronJobTypeLogCleanup   = "log-cleanup"
	CronJobTypeAll          = "all"
)

// CronJobServices contém os serviços de cron necessários para execução manual
type CronJobServices struct {
	TokenRefreshService *scheduler.TokenRefreshService
	CampaignSyncService *scheduler.CampaignSyncService
	LogCleanupService   *scheduler.LogCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeTokenRefresh:
			if services.TokenRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de renovação de tokens não disponível", nil)
				return
			}
			services.TokenRefreshService.TriggerManualSync()

		case CronJobTypeCampaignSync:
			if services.CampaignSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de campanhas não disponível", nil)
				return
			}
			services.CampaignSyncService.TriggerManualSync()

		case CronJobTypeLogCleanup:
			if services.LogCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de logs não disponível", nil)
				return
			}
			services.LogCleanupService.TriggerManualSync()

		case CronJobTypeAll:
			if services.TokenRefreshService != nil {
				services.TokenRefreshService.TriggerManualSync()
			}
			if services.CampaignSyncService != nil {
				services.CampaignSyncService.TriggerManualSync()
			}
			if services.LogCleanupService != nil {
				services.LogCleanupService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: token-refresh, campaign-sync, log-cleanup, all", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs. Atende apenas
// GET /api/cron/status; a rota carrega o segmento como parâmetro.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cronType := httprouter.ParamsFromContext(r.Context()).ByName("type"); cronType != "status" {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Rota não encontrada", nil)
			return
		}

		status := map[string]any{}

		if services.TokenRefreshService != nil {
			status["token_refresh"] = services.TokenRefreshService.GetStatus()
		}
		if services.CampaignSyncService != nil {
			status["campaign_sync"] = services.CampaignSyncService.GetStatus()
		}
		if services.LogCleanupService != nil {
			status["log_cleanup"] = services.LogCleanupService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
