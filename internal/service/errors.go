package service

import "errors"

// Sentinel errors surfaced to the handler layer, which maps them to
// stable machine-readable envelope codes.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrDJNotFound       = errors.New("dj not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrAccountNotFound  = errors.New("account not found")

	ErrInvalidFileType       = errors.New("invalid file type")
	ErrFileTooLarge          = errors.New("file too large")
	ErrProofRequired         = errors.New("proof file is required")
	ErrProofAlreadySubmitted = errors.New("proof already submitted")
	ErrNoProofAttached       = errors.New("no proof attached")
	ErrPaymentAlreadyPaid    = errors.New("payment already paid")
	ErrCommissionInvalid     = errors.New("commission out of range")
	ErrAmountInvalid         = errors.New("amount must be positive")
	ErrDueAtRequired         = errors.New("due date is required")

	ErrActorForbidden = errors.New("actor not allowed")

	ErrAccountEmailRequired    = errors.New("email is required")
	ErrAccountPasswordRequired = errors.New("password is required")
	ErrAccountExists           = errors.New("account already exists")
	ErrAccountDisabled         = errors.New("account disabled")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidPassword         = errors.New("invalid password")
)
