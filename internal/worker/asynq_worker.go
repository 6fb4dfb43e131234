package worker

import (
	"context"
	"encoding/json"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/provider"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles the payment lifecycle tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentDueReminder, c.handlePaymentDueReminder)
	mux.HandleFunc(queue.TaskProofAuditLog, c.handleProofAuditLog)
}

// handlePaymentDueReminder fires at a payment's due date. It only
// flags the payment in the logs; overdue stays derived and nothing is
// mutated here.
func (c *Consumer) handlePaymentDueReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_due_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentDueReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_due_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.PaymentID == 0 {
		logger.Debugw("worker_due_reminder_skip_invalid_payload", "payment_id", payload.PaymentID)
		return nil
	}
	payment, err := c.PaymentRepo.GetByID(payload.PaymentID)
	if err != nil {
		logger.Warnw("worker_due_reminder_fetch_failed", "payment_id", payload.PaymentID, "error", err)
		return err
	}
	if payment == nil {
		logger.Debugw("worker_due_reminder_skip_payment_not_found", "payment_id", payload.PaymentID)
		return nil
	}
	if payment.Status != constants.PaymentStatusPending {
		logger.Debugw("worker_due_reminder_skip_settled", "payment_id", payment.ID, "status", payment.Status)
		return nil
	}
	eventID := payment.EventID
	logger.Warnw("payment_due_reminder",
		"payment_id", payment.ID,
		"event_id", eventID,
		"amount", payment.Amount.String(),
		"due_at", payment.DueAt,
	)
	return nil
}

// handleProofAuditLog writes the proof lifecycle audit trail.
func (c *Consumer) handleProofAuditLog(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_proof_audit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ProofAuditLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_proof_audit_unmarshal_failed", "error", err)
		return err
	}
	if payload.PaymentID == 0 || payload.Action == "" {
		logger.Debugw("worker_proof_audit_skip_invalid_payload",
			"payment_id", payload.PaymentID,
			"action", payload.Action,
		)
		return nil
	}
	logger.Infow("proof_audit",
		"payment_id", payload.PaymentID,
		"action", payload.Action,
		"actor", payload.Actor,
		"proof_url", payload.ProofURL,
	)
	return nil
}
