package queue

import (
	"encoding/json"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentDueReminder flags a still-pending payment at its due date.
	TaskPaymentDueReminder = constants.TaskPaymentDueReminder
	// TaskProofAuditLog records proof submission/verification events.
	TaskProofAuditLog = constants.TaskProofAuditLog
)

// PaymentDueReminderPayload is the due reminder task payload.
type PaymentDueReminderPayload struct {
	PaymentID uint `json:"payment_id"`
}

// ProofAuditLogPayload is the proof audit task payload.
type ProofAuditLogPayload struct {
	PaymentID uint   `json:"payment_id"`
	Action    string `json:"action"` // submitted / cleared / verified / rejected / manual_paid
	Actor     string `json:"actor"`
	ProofURL  string `json:"proof_url,omitempty"`
}

// NewPaymentDueReminderTask creates a due reminder task.
func NewPaymentDueReminderTask(payload PaymentDueReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentDueReminder, body), nil
}

// NewProofAuditLogTask creates a proof audit task.
func NewProofAuditLogTask(payload ProofAuditLogPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProofAuditLog, body), nil
}
