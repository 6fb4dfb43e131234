package constants

// Payment status constants. Overdue is never stored: it is derived at
// read time from a pending payment whose due date has passed.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Derived payment view constants (list filters, dashboard).
const (
	PaymentViewOverdue = "overdue"
)

// Proof document MIME allow-list.
var ProofAllowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"application/pdf",
}

// Proof document size cap in bytes (10 MiB).
const ProofMaxSizeBytes = 10 * 1024 * 1024

// Event status constants.
const (
	EventStatusScheduled = "scheduled"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCanceled  = "canceled"
)

// Contract status constants.
const (
	ContractStatusDraft  = "draft"
	ContractStatusSent   = "sent"
	ContractStatusSigned = "signed"
	ContractStatusVoided = "voided"
)

// Account role constants.
const (
	RoleProducer = "producer"
	RoleFinance  = "finance"
	RoleReadonly = "readonly"
)

// Account status constants.
const (
	AccountStatusActive   = "active"
	AccountStatusDisabled = "disabled"
)

// Storage backend constants.
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Verification provider constants.
const (
	VerifierProviderRule = "rule"
	VerifierProviderHTTP = "http"
)

// Queue constants.
const (
	QueueDefault           = "default"
	TaskPaymentDueReminder = "payment:due_reminder"
	TaskProofAuditLog      = "payment:proof_audit"
)

// Cache constants.
const (
	RedisPrefixDefault = "unk"
)

// Currency constants.
const (
	SiteCurrencyDefault = "BRL"
)
