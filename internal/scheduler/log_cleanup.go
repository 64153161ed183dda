package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ArthurDS-tech/ads-dashboard-api/internal/config"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// AuditTrimmer descarta entradas de auditoria anteriores ao corte.
// Implementado pelo usecase de ingestão.
type AuditTrimmer interface {
	TrimAuditBefore(cutoff time.Time) int
}

// LogCleanupConfig representa a configuração do agendador de limpeza de logs
type LogCleanupConfig struct {
	CronSchedule   string
	RetentionHours int
	Enabled        bool
}

// LogCleanupService remove periodicamente entradas antigas do log de
// auditoria da ingestão
type LogCleanupService struct {
	scheduler          *gocron.Scheduler
	config             LogCleanupConfig
	trimmer            AuditTrimmer
	cleanupMutex       sync.Mutex
	lastRunCompletedAt time.Time
	lastRunRemoved     int
}

// NewLogCleanupService cria uma nova instância do serviço de limpeza de logs
func NewLogCleanupService(trimmer AuditTrimmer, appConfig *config.Config) *LogCleanupService {
	cleanupConfig := LogCleanupConfig{
		CronSchedule:   appConfig.LogCleanupJob.CronSchedule,
		RetentionHours: appConfig.LogCleanupJob.RetentionHours,
		Enabled:        appConfig.LogCleanupJob.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   cleanupConfig.CronSchedule,
		"retention_hours": cleanupConfig.RetentionHours,
		"enabled":         cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza de logs carregada")

	return &LogCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cleanupConfig,
		trimmer:   trimmer,
	}
}

// Start inicia o agendador
func (s *LogCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de logs desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de logs")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de logs: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de logs")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *LogCleanupService) cleanup() {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	cutoff := time.Now().Add(-time.Duration(s.config.RetentionHours) * time.Hour)
	removed := s.trimmer.TrimAuditBefore(cutoff)

	s.lastRunRemoved = removed
	s.lastRunCompletedAt = time.Now()

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("Entradas antigas removidas do log de auditoria")
	}
}

// TriggerManualSync executa a limpeza imediatamente
func (s *LogCleanupService) TriggerManualSync() {
	logrus.Info("Iniciando limpeza manual de logs")
	go s.cleanup()
}

// GetStatus retorna o status atual do agendador
func (s *LogCleanupService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"retention_hours":       s.config.RetentionHours,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_removed":      s.lastRunRemoved,
	}
}
