package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads/gadsclient"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/api"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/push"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/scheduler"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/account"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/aggregating"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/ingesting"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/usecases/reporting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	contactRepo := repository.NewContactRepository(pgConn)
	messageRepo := repository.NewMessageRepository(pgConn)
	conversationRepo := repository.NewConversationRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	tokenManager := gadsclient.NewTokenManager(cfg, accountRepo)
	gadsClient := gadsclient.NewClient(cfg, tokenManager)
	adsIntegrator := googleads.New(cfg, gadsClient)

	accountService := account.NewService(accountRepo, campaignRepo, adsIntegrator)
	aggregatorService := aggregating.NewService(accountRepo, campaignRepo, adsIntegrator, cfg)
	reportService := reporting.NewService(accountRepo, reportRepo, adsIntegrator, cfg)

	// Hub de websocket e serviço de ingestão do Umbler. O hub repassa os
	// eventos processados aos clientes inscritos na sala de atualizações
	hub := push.NewHub()
	ingestService := ingesting.NewService(contactRepo, messageRepo, conversationRepo, hub, cfg)

	// Inicializa os agendadores de sincronização
	tokenRefreshService := scheduler.NewTokenRefreshService(accountRepo, adsIntegrator, cfg)
	campaignSyncService := scheduler.NewCampaignSyncService(accountRepo, campaignRepo, adsIntegrator, cfg)
	logCleanupService := scheduler.NewLogCleanupService(ingestService, cfg)

	// Inicia os agendadores em background
	if err := tokenRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de renovação de tokens")
	} else {
		logrus.Info("Agendador de renovação de tokens iniciado com sucesso")
	}

	if err := campaignSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de campanhas")
	} else {
		logrus.Info("Agendador de sincronização de campanhas iniciado com sucesso")
	}

	if err := logCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de logs")
	} else {
		logrus.Info("Agendador de limpeza de logs iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		aggregatorService,
		accountService,
		reportService,
		authenticator,
		ingestService,
		hub,
		tokenRefreshService,
		campaignSyncService,
		logCleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
