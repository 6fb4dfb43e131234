package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/queue"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/storage"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/verification"

	"github.com/shopspring/decimal"
)

// Actor identifies who performs a lifecycle operation. It is
// extracted from the JWT by the handler layer; services never look up
// ambient auth state.
type Actor struct {
	AccountID uint
	Email     string
	Role      string
	IsSuper   bool
}

// CanSettleManually reports whether the actor may bypass the
// verifier and mark a payment paid.
func (a Actor) CanSettleManually() bool {
	return a.IsSuper || a.Role == constants.RoleFinance
}

// PaymentService owns the payment obligation lifecycle: creation,
// proof submission, verification, settlement and stats.
type PaymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	eventRepo   repository.EventRepository
	store       storage.Store
	verifier    verification.Verifier
	queue       *queue.Client
	now         func() time.Time
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	cfg *config.Config,
	paymentRepo repository.PaymentRepository,
	eventRepo repository.EventRepository,
	store storage.Store,
	verifier verification.Verifier,
	queueClient *queue.Client,
) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		store:       store,
		verifier:    verifier,
		queue:       queueClient,
		now:         time.Now,
	}
}

// CreatePaymentInput is the obligation creation input.
type CreatePaymentInput struct {
	EventID        uint
	Amount         *decimal.Decimal // defaults to the event's fee
	CommissionRate *decimal.Decimal // percent, defaults from config
	DueAt          time.Time
	Notes          string
}

// CreatePayment creates a pending obligation for an event. The
// amount defaults to the event's agreed fee; the commission must
// satisfy 0 <= commission <= amount.
func (s *PaymentService) CreatePayment(input CreatePaymentInput) (*models.Payment, error) {
	event, err := s.eventRepo.GetByID(input.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if input.DueAt.IsZero() {
		return nil, ErrDueAtRequired
	}

	amount := event.CacheValue.Decimal
	if input.Amount != nil {
		amount = *input.Amount
	}
	if !amount.IsPositive() {
		return nil, ErrAmountInvalid
	}

	rate := decimal.NewFromFloat(s.cfg.Payment.DefaultCommissionPercent)
	if input.CommissionRate != nil {
		rate = *input.CommissionRate
	}
	commission := amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	if commission.IsNegative() || commission.GreaterThan(amount) {
		return nil, ErrCommissionInvalid
	}

	payment := &models.Payment{
		EventID:          event.ID,
		Amount:           models.NewMoneyFromDecimal(amount),
		CommissionAmount: models.NewMoneyFromDecimal(commission),
		Currency:         constants.SiteCurrencyDefault,
		Status:           constants.PaymentStatusPending,
		DueAt:            input.DueAt,
		Notes:            input.Notes,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	if s.cfg.Payment.DueReminderEnabled {
		delay := time.Until(payment.DueAt)
		if err := s.queue.EnqueuePaymentDueReminder(queue.PaymentDueReminderPayload{PaymentID: payment.ID}, delay); err != nil {
			logger.Warnw("enqueue_due_reminder_failed", "payment_id", payment.ID, "error", err)
		}
	}

	return payment, nil
}

// GetPayment fetches an obligation.
func (s *PaymentService) GetPayment(id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListPayments returns a filtered page plus the unpaged total.
func (s *PaymentService) ListPayments(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return s.paymentRepo.List(filter)
}

// SubmitProof validates and attaches a proof document to a pending
// payment. Resubmission over an existing proof is rejected; the
// proof must be cleared explicitly first.
func (s *PaymentService) SubmitProof(ctx context.Context, paymentID uint, file *multipart.FileHeader, description string, actor Actor) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}
	if payment.HasProof() {
		return nil, ErrProofAlreadySubmitted
	}

	src, contentType, err := s.validateProofFile(file)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	url, err := s.store.Save(ctx, src, contentType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payment.ProofURL = url
	payment.ProofDescription = strings.TrimSpace(description)
	payment.ProofUploadedAt = &now
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.queue.EnqueueProofAuditLog(queue.ProofAuditLogPayload{
		PaymentID: payment.ID,
		Action:    "submitted",
		Actor:     actor.Email,
		ProofURL:  url,
	}); err != nil {
		logger.Warnw("enqueue_proof_audit_failed", "payment_id", payment.ID, "error", err)
	}

	return payment, nil
}

// ClearProof detaches the proof so a new one can be submitted.
// Settled payments keep their proof.
func (s *PaymentService) ClearProof(ctx context.Context, paymentID uint, actor Actor) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}
	if !payment.HasProof() {
		return nil, ErrNoProofAttached
	}

	if err := s.store.Delete(ctx, payment.ProofURL); err != nil {
		logger.Warnw("proof_artifact_delete_failed", "payment_id", payment.ID, "url", payment.ProofURL, "error", err)
	}

	payment.ProofURL = ""
	payment.ProofDescription = ""
	payment.ProofUploadedAt = nil
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.queue.EnqueueProofAuditLog(queue.ProofAuditLogPayload{
		PaymentID: payment.ID,
		Action:    "cleared",
		Actor:     actor.Email,
	}); err != nil {
		logger.Warnw("enqueue_proof_audit_failed", "payment_id", payment.ID, "error", err)
	}

	return payment, nil
}

// Verify runs the configured verifier against the attached proof.
// On acceptance the payment is settled; a rejection returns the
// result without mutating state. Context cancellation aborts before
// any write.
func (s *PaymentService) Verify(ctx context.Context, paymentID uint) (*verification.Result, *models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, nil, err
	}
	if payment == nil {
		return nil, nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return nil, nil, ErrPaymentAlreadyPaid
	}
	if !payment.HasProof() {
		return nil, nil, ErrNoProofAttached
	}

	req := verification.Request{
		PaymentID:       fmt.Sprintf("%d", payment.ID),
		ProofURL:        payment.ProofURL,
		ExpectedAmount:  payment.Amount.Decimal,
		ExpectedCNPJ:    s.cfg.Verification.AgencyCNPJ,
		ProofUploadedAt: payment.ProofUploadedAt,
	}

	result, err := s.verifier.Verify(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if !result.Verified {
		if err := s.queue.EnqueueProofAuditLog(queue.ProofAuditLogPayload{
			PaymentID: payment.ID,
			Action:    "rejected",
			ProofURL:  payment.ProofURL,
		}); err != nil {
			logger.Warnw("enqueue_proof_audit_failed", "payment_id", payment.ID, "error", err)
		}
		return result, payment, nil
	}

	now := s.now()
	payment.Status = constants.PaymentStatusPaid
	payment.PaidAt = &now
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, nil, err
	}

	if err := s.queue.EnqueueProofAuditLog(queue.ProofAuditLogPayload{
		PaymentID: payment.ID,
		Action:    "verified",
		ProofURL:  payment.ProofURL,
	}); err != nil {
		logger.Warnw("enqueue_proof_audit_failed", "payment_id", payment.ID, "error", err)
	}

	return result, payment, nil
}

// ManualMarkPaid settles a payment without the verifier. Restricted
// to finance and super accounts; the override is recorded.
func (s *PaymentService) ManualMarkPaid(paymentID uint, actor Actor) (*models.Payment, error) {
	if !actor.CanSettleManually() {
		return nil, ErrActorForbidden
	}

	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}

	now := s.now()
	payment.Status = constants.PaymentStatusPaid
	payment.PaidAt = &now
	payment.ManualOverride = true
	payment.MarkedPaidBy = actor.Email
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.queue.EnqueueProofAuditLog(queue.ProofAuditLogPayload{
		PaymentID: payment.ID,
		Action:    "manual_paid",
		Actor:     actor.Email,
	}); err != nil {
		logger.Warnw("enqueue_proof_audit_failed", "payment_id", payment.ID, "error", err)
	}

	return payment, nil
}

// FinancialStats is the dashboard aggregation over obligations.
type FinancialStats struct {
	PendingCount int64        `json:"pending_count"`
	OverdueCount int64        `json:"overdue_count"`
	TotalPending models.Money `json:"total_pending"`
}

// ComputeFinancialStats aggregates in-memory rows: every pending
// payment counts and sums; overdue is the pending subset past due.
func ComputeFinancialStats(payments []models.Payment, now time.Time) FinancialStats {
	stats := FinancialStats{
		TotalPending: models.NewMoneyFromDecimal(decimal.Zero),
	}
	total := decimal.Zero
	for i := range payments {
		p := &payments[i]
		if p.Status != constants.PaymentStatusPending {
			continue
		}
		stats.PendingCount++
		total = total.Add(p.Amount.Decimal)
		if p.IsOverdue(now) {
			stats.OverdueCount++
		}
	}
	stats.TotalPending = models.NewMoneyFromDecimal(total)
	return stats
}

// validateProofFile checks size and sniffed MIME type, returning the
// rewound reader and its detected content type.
func (s *PaymentService) validateProofFile(file *multipart.FileHeader) (multipart.File, string, error) {
	if file == nil {
		return nil, "", ErrProofRequired
	}

	maxSize := s.cfg.Upload.MaxSize
	if maxSize <= 0 {
		maxSize = constants.ProofMaxSizeBytes
	}
	if file.Size > maxSize {
		return nil, "", ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		src.Close()
		return nil, "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		src.Close()
		return nil, "", err
	}

	contentType := http.DetectContentType(buffer[:n])
	// DetectContentType appends charset parameters for text types
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

	allowed := s.cfg.Upload.AllowedTypes
	if len(allowed) == 0 {
		allowed = constants.ProofAllowedMimeTypes
	}
	ok := false
	for _, t := range allowed {
		if strings.EqualFold(contentType, t) {
			ok = true
			break
		}
	}
	if !ok {
		src.Close()
		return nil, "", ErrInvalidFileType
	}

	return src, contentType, nil
}
