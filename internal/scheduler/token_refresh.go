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

// TokenRefreshConfig representa a configuração do agendador de renovação de tokens
type TokenRefreshConfig struct {
	CronSchedule        string
	ExpiryBufferMinutes int
	Enabled             bool
}

// TokenRefreshService renova preventivamente os access tokens das contas
// antes da expiração, para que as requisições do dashboard não paguem o
// custo da renovação
type TokenRefreshService struct {
	scheduler          *gocron.Scheduler
	config             TokenRefreshConfig
	accountRepo        repository.AccountRepository
	integrator         googleads.Integrator
	refreshRunning     bool
	refreshMutex       sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunRefreshed   int
	lastRunFailed      int
}

// NewTokenRefreshService cria uma nova instância do serviço de renovação de tokens
func NewTokenRefreshService(
	accountRepo repository.AccountRepository,
	integrator googleads.Integrator,
	appConfig *config.Config,
) *TokenRefreshService {
	refreshConfig := TokenRefreshConfig{
		CronSchedule:        appConfig.TokenRefreshJob.CronSchedule,
		ExpiryBufferMinutes: appConfig.TokenRefreshJob.ExpiryBufferMinutes,
		Enabled:             appConfig.TokenRefreshJob.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         refreshConfig.CronSchedule,
		"expiry_buffer_minutes": refreshConfig.ExpiryBufferMinutes,
		"enabled":               refreshConfig.Enabled,
	}).Info("Configuração do agendador de renovação de tokens carregada")

	return &TokenRefreshService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      refreshConfig,
		accountRepo: accountRepo,
		integrator:  integrator,
	}
}

// Start inicia o agendador
func (s *TokenRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Renovação automática de tokens desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de renovação de tokens")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAllTokens()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar renovação de tokens: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de renovação de tokens")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllTokens percorre as contas ativas e renova os tokens que expiram
// dentro da janela de folga. Falha em uma conta não interrompe as demais.
func (s *TokenRefreshService) refreshAllTokens() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Renovação de tokens já em andamento, ignorando")
		return
	}
	s.refreshRunning = true
	s.refreshMutex.Unlock()

	startTime := time.Now()
	s.lastRunStartedAt = startTime

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.refreshMutex.Unlock()
	}()

	accounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para renovação de tokens")
		return
	}

	refreshed := 0
	failed := 0
	buffer := time.Duration(s.config.ExpiryBufferMinutes) * time.Minute

	for _, account := range accounts {
		if account.Credentials.RefreshToken == "" {
			logrus.WithField("account_id", account.ID).Warn("Conta sem refresh token. Pulando.")
			continue
		}

		// Ainda dentro da validade com folga, nada a fazer
		if time.Now().Add(buffer).Before(account.Credentials.TokenExpiresAt) {
			continue
		}

		if err := s.integrator.RefreshAccountToken(account); err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ID,
				"customer_id": account.CustomerID,
				"error":       err.Error(),
			}).Error("Erro ao renovar token da conta")
			continue
		}

		refreshed++
		logrus.WithField("account_id", account.ID).Info("Token da conta renovado com sucesso")
	}

	s.lastRunRefreshed = refreshed
	s.lastRunFailed = failed
	s.lastRunCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"accounts":  len(accounts),
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Renovação de tokens concluída")
}

// TriggerManualSync inicia manualmente uma renovação de tokens
func (s *TokenRefreshService) TriggerManualSync() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Renovação de tokens já em andamento, ignorando solicitação manual")
		return
	}
	s.refreshMutex.Unlock()

	logrus.Info("Iniciando renovação manual de tokens")
	go s.refreshAllTokens()
}

// GetStatus retorna o status atual do agendador
func (s *TokenRefreshService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"expiry_buffer_minutes": s.config.ExpiryBufferMinutes,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_refreshed":    s.lastRunRefreshed,
		"last_run_failed":       s.lastRunFailed,
	}
}
