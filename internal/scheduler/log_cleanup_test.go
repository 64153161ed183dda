package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
)

type fakeTrimmer struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed int
}

func (f *fakeTrimmer) TrimAuditBefore(cutoff time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.removed
}

func TestLogCleanupService_Cleanup(t *testing.T) {
	trimmer := &fakeTrimmer{removed: 7}

	service := &LogCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config: LogCleanupConfig{
			RetentionHours: 24,
			Enabled:        true,
		},
		trimmer: trimmer,
	}

	before := time.Now()
	service.cleanup()

	trimmer.mu.Lock()
	defer trimmer.mu.Unlock()

	assert.Len(t, trimmer.cutoffs, 1)

	// O corte deve ficar a RetentionHours do momento da execução
	expected := before.Add(-24 * time.Hour)
	assert.WithinDuration(t, expected, trimmer.cutoffs[0], time.Minute)

	assert.Equal(t, 7, service.lastRunRemoved)
	assert.False(t, service.lastRunCompletedAt.IsZero())
}

func TestLogCleanupService_GetStatus(t *testing.T) {
	service := &LogCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config: LogCleanupConfig{
			CronSchedule:   "0 3 * * *",
			RetentionHours: 48,
			Enabled:        true,
		},
		trimmer: &fakeTrimmer{},
	}

	service.cleanup()

	status := service.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron"])
	assert.Equal(t, 48, status["retention_hours"])
	assert.Equal(t, 0, status["last_run_removed"])
}
