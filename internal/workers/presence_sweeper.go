package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/service"
)

// sweepTimeout bounds a single sweep.
const sweepTimeout = 30 * time.Second

// presenceSweeper marks users offline once their last activity is older
// than ttl, so the online flag decays for clients that never log out.
type presenceSweeper struct {
	users service.UserService
	ttl   time.Duration

	cron *cron.Cron

	logger *logger.Logger
}

func newPresenceSweeper(users service.UserService, cfg config.Workers, log *logger.Logger) (*presenceSweeper, error) {
	l := log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "presence_sweeper")
	})

	cl := cronLogger{l}
	s := &presenceSweeper{
		users: users,
		ttl:   cfg.PresenceTTL,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: l,
	}

	if _, err := s.cron.AddFunc(cfg.PresenceSchedule, s.sweep); err != nil {
		return nil, fmt.Errorf("invalid presence schedule %q: %w", cfg.PresenceSchedule, err)
	}

	return s, nil
}

func (s *presenceSweeper) Run() {
	s.logger.Info().Dur("ttl", s.ttl).Msg("presence sweeper started")
	s.cron.Start()
}

func (s *presenceSweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info().Msg("presence sweeper stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("presence sweeper stop: %w", ctx.Err())
	}
}

func (s *presenceSweeper) sweep() {
	ctx, cancel := context.WithTimeout(s.logger.WithContext(context.Background()), sweepTimeout)
	defer cancel()

	n, err := s.users.SweepStalePresence(ctx, s.ttl)
	if err != nil {
		s.logger.Err(err).Msg("presence sweep failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("users", n).Msg("stale users marked offline")
	}
}
