package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/logger"
)

const defaultSweepSpec = "@hourly"

// Sweeper periodically transitions lapsed invitations to expired status so
// admin listings reflect reality without waiting for a lazy check.
type Sweeper struct {
	invites *services.InviteService
	cron    *cron.Cron
	spec    string
	log     *zap.Logger
}

// Option customises the Sweeper.
type Option func(*Sweeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithSweepSchedule overrides the cron specification for the invitation sweep.
func WithSweepSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.spec = spec
		}
	}
}

// NewSweeper constructs a Sweeper. A nil invite service disables it.
func NewSweeper(invites *services.InviteService, opts ...Option) *Sweeper {
	sweeper := &Sweeper{
		invites: invites,
		spec:    defaultSweepSpec,
		log:     logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(sweeper)
	}

	if sweeper.cron == nil {
		sweeper.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return sweeper
}

// Start registers the sweep job and launches the scheduler.
func (s *Sweeper) Start() error {
	if s.invites == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, func() {
		count, err := s.invites.SweepExpired(context.Background())
		if err != nil {
			s.log.Warn("invitation sweep failed", zap.Error(err))
			return
		}
		if count > 0 {
			s.log.Info("invitations expired", zap.Int64("count", count))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any running sweep to complete.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes the sweep immediately. Used in tests and at startup so a
// long-stopped server catches up right away.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if s.invites != nil {
		if _, err := s.invites.SweepExpired(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
