package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// TournamentAdvancer moves due tournaments along their lifecycle.
type TournamentAdvancer interface {
	AdvanceDue(ctx context.Context) (int, error)
}

// Sweeper periodically advances tournament statuses: open tournaments past
// start time go InProgress, in-progress ones past end time go Completed.
type Sweeper struct {
	advancer  TournamentAdvancer
	interval  time.Duration
	logger    zerolog.Logger
	scheduler gocron.Scheduler
}

// NewSweeper creates a new Sweeper.
func NewSweeper(advancer TournamentAdvancer, interval time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		advancer: advancer,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the sweep and returns immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.sweep(ctx) }),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	s.scheduler = scheduler

	s.logger.Info().Dur("interval", s.interval).Msg("tournament sweeper started")
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (s *Sweeper) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

func (s *Sweeper) sweep(ctx context.Context) {
	advanced, err := s.advancer.AdvanceDue(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("tournament sweep failed")
		return
	}

	if advanced > 0 {
		s.logger.Info().Int("advanced", advanced).Msg("tournaments advanced")
	}
}
