package workers

import (
	"context"
	"errors"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/service"
)

type Workers struct {
	workers []Worker

	logger *logger.Logger
}

func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	logger.Info().Msg("creating background workers...")

	sweeper, err := newPresenceSweeper(services.UserService, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Workers{
		workers: []Worker{sweeper},
		logger:  logger,
	}, nil
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops the workers in reverse start order and reports every failure.
func (w *Workers) Stop(ctx context.Context) error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		if err := w.workers[i].Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
