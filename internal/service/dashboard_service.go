package service

import (
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
)

// DashboardService aggregates the portal landing page numbers.
type DashboardService struct {
	paymentRepo repository.PaymentRepository
	eventRepo   repository.EventRepository
	djRepo      repository.DJRepository
	now         func() time.Time
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(
	paymentRepo repository.PaymentRepository,
	eventRepo repository.EventRepository,
	djRepo repository.DJRepository,
) *DashboardService {
	return &DashboardService{
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		djRepo:      djRepo,
		now:         time.Now,
	}
}

// DashboardStats is the landing page payload.
type DashboardStats struct {
	Financial      FinancialStats `json:"financial"`
	UpcomingEvents int64          `json:"upcoming_events"`
	ActiveDJs      int64          `json:"active_djs"`
}

// Stats computes the dashboard numbers. Financial stats run over the
// pending obligations only; overdue stays a derived view.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	now := s.now()

	pending, _, err := s.paymentRepo.List(repository.PaymentListFilter{
		Status: constants.PaymentStatusPending,
		Now:    now,
	})
	if err != nil {
		return nil, err
	}

	upcoming, err := s.eventRepo.CountUpcoming(now)
	if err != nil {
		return nil, err
	}

	activeDJs, err := s.djRepo.CountActive()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Financial:      ComputeFinancialStats(pending, now),
		UpcomingEvents: upcoming,
		ActiveDJs:      activeDJs,
	}, nil
}
