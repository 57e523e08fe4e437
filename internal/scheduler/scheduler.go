// Package scheduler runs periodic matching scans.
package scheduler

import (
	"context"

	"transition-crm/internal/logger"
	"transition-crm/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers matching scans on a cron schedule.
type Scheduler struct {
	cron          *cron.Cron
	matchService  *service.MatchService
	cronSpec      string
	minConfidence int
}

// NewScheduler creates a scheduler with second-precision cron specs.
func NewScheduler(matchService *service.MatchService, cronSpec string, minConfidence int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		matchService:  matchService,
		cronSpec:      cronSpec,
		minConfidence: minConfidence,
	}
}

// Start registers the scan job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		logger.Info().Str("cron", s.cronSpec).Msg("running scheduled matching scan")

		outcome, err := s.matchService.RunScan(context.Background(), s.minConfidence)
		if err != nil {
			logger.Error().Err(err).Msg("scheduled matching scan failed")
			return
		}
		logger.Info().
			Str("run_id", outcome.RunID.String()).
			Int("suggestions", len(outcome.Result.Suggestions)).
			Msg("scheduled matching scan finished")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("cron", s.cronSpec).Msg("scheduler started")
	return nil
}

// Stop stops the cron loop; running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Info().Msg("scheduler stopped")
}

// RunScanNow triggers the scan job immediately, outside the schedule.
func (s *Scheduler) RunScanNow() (*service.ScanOutcome, error) {
	return s.matchService.RunScan(context.Background(), s.minConfidence)
}
