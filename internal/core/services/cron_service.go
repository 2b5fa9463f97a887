package services

import (
	"context"
	"time"

	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PurgeSchedule runs the denylist purge at minute 5 of every hour
const PurgeSchedule = "5 * * * *"

// CronService runs periodic maintenance jobs
type CronService struct {
	cron    *cron.Cron
	revoked repositories.RevokedTokenRepository
	now     func() time.Time
}

// NewCronService creates a new cron service
func NewCronService(revoked repositories.RevokedTokenRepository) *CronService {
	return &CronService{
		cron:    cron.New(),
		revoked: revoked,
		now:     time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(PurgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.PurgeRevokedTokens(ctx)
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.With("cron").WithField("schedule", PurgeSchedule).Info("cron started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logger.With("cron").Info("cron stopped")
}

// PurgeRevokedTokens drops denylist entries for tokens that have expired anyway
func (s *CronService) PurgeRevokedTokens(ctx context.Context) (int64, error) {
	if s.revoked == nil {
		return 0, nil
	}

	n, err := s.revoked.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.With("cron").WithError(err).Error("purge revoked tokens failed")
		return 0, err
	}
	if n > 0 {
		logger.With("cron").WithField("purged", n).Info("expired revoked tokens purged")
	}
	return n, nil
}
