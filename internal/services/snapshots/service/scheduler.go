package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"gymdesk/internal/services/snapshots/domain"
)

// DefaultSpec captures shortly after local midnight
const DefaultSpec = "5 0 * * *"

// tickTimeout bounds one scheduled capture
const tickTimeout = 2 * time.Minute

// Scheduler captures today's snapshot on a cron spec
type Scheduler struct {
	cron   *cron.Cron
	runner domain.RunnerPort
	log    zerolog.Logger
	spec   string
}

// NewScheduler parses spec (standard five field cron) in loc and registers the daily capture
func NewScheduler(runner domain.RunnerPort, spec string, loc *time.Location, l zerolog.Logger) (*Scheduler, error) {
	if runner == nil {
		panic("snapshots.Scheduler requires a runner")
	}
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{l: l}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: runner,
		log:    l,
		spec:   spec,
	}
	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("snapshots: scheduler started")
}

// Stop halts the loop and waits for a running capture up to ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("snapshots: scheduler stop timed out")
		return
	}
	s.log.Info().Msg("snapshots: scheduler stopped")
}

// Next is the next planned run, zero when nothing is scheduled
func (s *Scheduler) Next() time.Time {
	es := s.cron.Entries()
	if len(es) == 0 {
		return time.Time{}
	}
	return es[0].Next
}

// Tick captures today once
func (s *Scheduler) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	_, today := s.runner.Days(1)
	if _, err := s.runner.Capture(ctx, today); err != nil {
		s.log.Warn().Err(err).Time("day", today).Msg("snapshots: scheduled capture failed")
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ l zerolog.Logger }

var _ cron.Logger = cronLogger{}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
