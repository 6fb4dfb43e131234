package worker

import (
	"context"
	"errors"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	overdueScanInterval = time.Hour
)

// Service runs the asynq consumer plus the periodic overdue scan.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the worker until the server stops.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.PaymentRepo != nil {
		go s.runOverdueScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runOverdueScanLoop periodically reports pending payments past their
// due date. Advisory only: the scan never flips a payment's status.
func (s *Service) runOverdueScanLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.PaymentRepo == nil {
		return
	}
	runOnce := func() {
		payments, err := s.consumer.PaymentRepo.ListPendingDueBefore(time.Now())
		if err != nil {
			logger.Warnw("worker_overdue_scan_failed", "error", err)
			return
		}
		for _, payment := range payments {
			logger.Warnw("payment_overdue",
				"payment_id", payment.ID,
				"event_id", payment.EventID,
				"amount", payment.Amount.String(),
				"due_at", payment.DueAt,
			)
		}
		if len(payments) > 0 {
			logger.Infow("worker_overdue_scan_done", "overdue_count", len(payments))
		}
	}
	runOnce()

	ticker := time.NewTicker(overdueScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
