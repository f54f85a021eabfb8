package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

const sweepTimeout = 5 * time.Minute

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron        *cron.Cron
	attachments ports.AttachmentService
	minAge      time.Duration
	log         zerolog.Logger
}

func New(attachments ports.AttachmentService, minAge time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		attachments: attachments,
		minAge:      minAge,
		log:         log,
	}
}

// Start registers the orphaned blob sweep under spec (standard five-field
// cron syntax) and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweepOrphans); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Str("sweep", spec).Msg("scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.attachments.SweepOrphans(ctx, s.minAge)
	if err != nil {
		s.log.Error().Err(err).Msg("orphaned blob sweep failed")
		return
	}
	s.log.Debug().Int("removed", removed).Msg("orphaned blob sweep finished")
}
