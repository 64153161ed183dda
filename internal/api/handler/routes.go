package handler

import (
	"net/http"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/api/handler/router"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/account"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/aggregating"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/ingesting"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/reporting"
	"github.com/ArthurDS-tech/ads-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/api/auth/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/api/auth/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/auth/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/auth/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/api/google-ads/accounts",
			Method:      http.MethodGet,
			Handler:     AdAccountList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/google-ads/accounts",
			Method:      http.MethodPost,
			Handler:     CreateAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/google-ads/accounts/:id",
			Method:      http.MethodGet,
			Handler:     GetAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/google-ads/accounts/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/api/google-ads/accounts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/google-ads/accounts/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/api/google-ads/accounts/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     AdAccountCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dashboard(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:        "/api/dashboard/overview",
			Method:      http.MethodGet,
			Handler:     DashboardOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/dashboard/performance",
			Method:      http.MethodGet,
			Handler:     DashboardPerformance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/dashboard/top-campaigns",
			Method:      http.MethodGet,
			Handler:     DashboardTopCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/dashboard/alerts",
			Method:      http.MethodGet,
			Handler:     DashboardAlerts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/google-ads/accounts/:id/metrics",
			Method:      http.MethodGet,
			Handler:     AccountMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/google-ads/accounts/:id/keywords",
			Method:      http.MethodGet,
			Handler:     AccountKeywords(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/google-ads/accounts/:id/geographic",
			Method:      http.MethodGet,
			Handler:     AccountGeographic(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/api/reports",
			Method:      http.MethodGet,
			Handler:     ListReports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/reports",
			Method:      http.MethodPost,
			Handler:     GenerateReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		// GET /api/reports/templates também cai aqui: o httprouter não
		// aceita rota estática ao lado do parâmetro :id
		{
			Path:        "/api/reports/:id",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Umbler(service ingesting.Ingestor) []router.Route {
	return []router.Route{
		{
			Path:    "/api/umbler/webhook",
			Method:  http.MethodPost,
			Handler: UmblerWebhook(service),
		},
		{
			Path:        "/api/umbler/contacts",
			Method:      http.MethodGet,
			Handler:     ListContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/contacts",
			Method:      http.MethodPost,
			Handler:     SaveContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/contacts/:id",
			Method:      http.MethodGet,
			Handler:     GetContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/contacts/:id",
			Method:      http.MethodPut,
			Handler:     SaveContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/contacts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/api/umbler/messages",
			Method:      http.MethodGet,
			Handler:     ListMessages(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/messages",
			Method:      http.MethodPost,
			Handler:     SaveMessage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/messages/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateMessageStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/conversations",
			Method:      http.MethodGet,
			Handler:     ListConversations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/conversations/:id",
			Method:      http.MethodGet,
			Handler:     GetConversation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/conversations/:id",
			Method:      http.MethodPut,
			Handler:     UpdateConversationStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/health",
			Method:      http.MethodGet,
			Handler:     UmblerHealth(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/api/umbler/audit",
			Method:      http.MethodGet,
			Handler:     UmblerAuditLog(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/api/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		// Registrada como /api/cron/:type para não conflitar com o
		// parâmetro da rota de execução; o handler só atende "status"
		{
			Path:        "/api/cron/:type",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
