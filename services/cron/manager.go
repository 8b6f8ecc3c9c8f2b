package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/utils/logger"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron  *cron.Cron
	store database.Storage
	log   *logger.Logger
	now   func() time.Time
}

// NewCronManager creates a new cron manager
func NewCronManager(store database.Storage, log *logger.Logger) *CronManager {
	if log == nil {
		log = logger.Nop()
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cronLogger{log})))

	return &CronManager{
		cron:  c,
		store: store,
		log:   log.With("component", "cron"),
		now:   time.Now,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("starting cron jobs")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	m.log.Info("cron jobs started", "entries", len(m.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	m.log.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 5 minutes: database health
	_, err := m.cron.AddFunc("0 */5 * * * *", func() {
		m.logJobStart("check_database_health")
		m.CheckDatabaseHealth()
	})
	if err != nil {
		return err
	}

	// Daily at 1 AM: activity summary for the previous 24 hours
	_, err = m.cron.AddFunc("0 0 1 * * *", func() {
		m.logJobStart("daily_activity_summary")
		m.DailyActivitySummary()
	})
	if err != nil {
		return err
	}

	m.log.Info("all cron jobs registered")
	return nil
}

func (m *CronManager) logJobStart(jobName string) {
	m.log.Info("cron job starting", "job", jobName, "at", m.now().Format(time.RFC3339))
}

func (m *CronManager) logJobComplete(jobName string, keysAndValues ...interface{}) {
	m.log.Info("cron job completed", append([]interface{}{"job", jobName}, keysAndValues...)...)
}

func (m *CronManager) logJobError(jobName string, err error) {
	m.log.Error("cron job failed", "job", jobName, "error", err)
}

// cronLogger adapts the zap logger to cron.Logger
type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
