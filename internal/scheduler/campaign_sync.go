package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/integrator/googleads"
	"github.com/ArthurDS-tech/ads-dashboard-api/infrastructure/repository"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"
	"github.com/ArthurDS-tech/ads-dashboard-api/internal/domain"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// CampaignSyncConfig representa a configuração do agendador de sincronização de campanhas
type CampaignSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// CampaignSyncService gerencia o agendamento e execução da sincronização do
// espelho local de campanhas do Google Ads
type CampaignSyncService struct {
	scheduler           *gocron.Scheduler
	config              CampaignSyncConfig
	accountRepo         repository.AccountRepository
	campaignRepo        repository.CampaignRepository
	integrator          googleads.Integrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewCampaignSyncService cria uma nova instância do serviço de sincronização de campanhas
func NewCampaignSyncService(
	accountRepo repository.AccountRepository,
	campaignRepo repository.CampaignRepository,
	integrator googleads.Integrator,
	appConfig *config.Config,
) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		CronSchedule:        appConfig.CampaignSyncJob.CronSchedule,
		RequestDelaySeconds: appConfig.CampaignSyncJob.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.CampaignSyncJob.MaxConcurrentJobs,
		SyncEnabled:         appConfig.CampaignSyncJob.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de campanhas carregada")

	return &CampaignSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		accountRepo:  accountRepo,
		campaignRepo: campaignRepo,
		integrator:   integrator,
	}
}

// Start inicia o agendador
func (s *CampaignSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts recalcula o espelho de campanhas de todas as contas ativas
// com sincronização habilitada
func (s *CampaignSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de campanhas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de campanhas para todas as contas ativas")

	accounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para sincronização de campanhas")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para sincronização de campanhas")
		return
	}

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		if !account.SyncEnabled {
			logrus.WithField("account_id", account.ID).Debug("Conta com sincronização desabilitada. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.AdAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			s.syncAccount(ctx, acc)

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(account)
	}

	wg.Wait()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(accounts),
	}).Info("Sincronização de campanhas concluída")

	s.lastSyncCompletedAt = time.Now()
}

// syncAccount busca as campanhas da conta no Google Ads e substitui o
// espelho local por inteiro
func (s *CampaignSyncService) syncAccount(ctx context.Context, acc *domain.AdAccount) {
	logrus.WithFields(logrus.Fields{
		"account_id":   acc.ID,
		"customer_id":  acc.CustomerID,
		"account_name": acc.Name,
	}).Info("Sincronizando campanhas da conta")

	campaigns, err := s.integrator.GetCampaigns(acc, nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":  acc.ID,
			"customer_id": acc.CustomerID,
			"error":       err.Error(),
		}).Error("Erro ao obter campanhas da conta no Google Ads")
		return
	}

	if err := s.campaignRepo.ReplaceForAccount(ctx, acc.ID, campaigns); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Error("Erro ao salvar campanhas da conta no banco de dados")
		return
	}

	if err := s.accountRepo.UpdateLastSync(acc.ID, time.Now()); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Warn("Erro ao registrar horário de sincronização da conta")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": acc.ID,
		"campaigns":  len(campaigns),
	}).Info("Campanhas da conta sincronizadas com sucesso")
}

// TriggerManualSync inicia manualmente uma sincronização de campanhas
func (s *CampaignSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de campanhas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de campanhas")
	go s.syncAllAccounts(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *CampaignSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
