package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Scheduler re-triggers background growth on a fixed interval, so a run that
// halted on a storage failure resumes later without a restart.
type Scheduler struct {
	scheduler gocron.Scheduler
	seeder    *Seeder
	job       gocron.Job
}

// NewScheduler creates a scheduler for the seeder. An interval <= 0 yields a
// scheduler with no job.
func NewScheduler(ctx context.Context, seeder *Seeder, interval time.Duration) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{scheduler: scheduler, seeder: seeder}
	if interval <= 0 {
		return s, nil
	}

	s.job, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if seeder.Start(ctx) {
				log.Info().Msg("Scheduled seed run started")
			}
		}),
		gocron.WithName("seed_growth"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule seed job: %w", err)
	}
	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	if s.job != nil {
		log.Info().Str("job", s.job.Name()).Msg("Seed scheduler started")
	}
}

// Stop shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
