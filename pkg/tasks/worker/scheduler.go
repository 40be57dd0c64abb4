package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/tasks"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:generate $GO_OUTPUT/mockery  --name PassRunner --filename pass_runner_mock.go --inpackage

// PassRunner runs one provisioning pass.
type PassRunner interface {
	RunPass(ctx context.Context) (tasks.PassResult, error)
}

// Scheduler runs provisioning passes on a fixed interval inside a long lived
// process, as an alternative to the provision-domains cron job.
type Scheduler struct {
	runner   PassRunner
	interval time.Duration
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewScheduler(runner PassRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduling loop and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Logger.Info().Msg("Provisioning scheduler disabled, passes run from cron")
		return
	}
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop ends the loop and waits for a pass in progress to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	defer recoverOnPanic(log.Logger)
	log.Logger.Info().Dur("interval", s.interval).Msg("Starting provisioning scheduler")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	defer recoverOnPanic(log.Logger)
	res, err := s.runner.RunPass(ctx)
	switch {
	case errors.Is(err, tasks.ErrPassRunning):
		log.Logger.Debug().Msg("Skipping scheduled pass, another pass is running")
	case err != nil:
		log.Logger.Error().Err(err).Msg("Scheduled provisioning pass failed")
	default:
		log.Logger.Debug().Str("outcome", res.Outcome).Msg("Scheduled provisioning pass done")
	}
}

// Catches a panic so that only the surrounding function is exited
func recoverOnPanic(logger zerolog.Logger) {
	if r := recover(); r != nil {
		logger.Error().Stack().Msgf("recovered panic in provisioning scheduler: %v", r)
	}
}
