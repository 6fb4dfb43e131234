package verification

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Request is the proof verification request. The JSON shape is a
// fixed wire contract shared with external verifier services.
type Request struct {
	PaymentID      string          `json:"paymentId"`
	ProofURL       string          `json:"proofUrl"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount,omitempty"`
	ExpectedCNPJ   string          `json:"expectedCnpj,omitempty"`

	// ProofUploadedAt is set by internal callers so the rule verifier
	// can bound proof age. It never crosses the wire.
	ProofUploadedAt *time.Time `json:"-"`
}

// Details are the individual verification checks.
type Details struct {
	AmountMatch bool `json:"amountMatch"`
	CNPJMatch   bool `json:"cnpjMatch"`
	DateValid   bool `json:"dateValid"`
	FormatValid bool `json:"formatValid"`
}

// Result is the verification outcome. A rejection (Verified=false)
// is a normal result, not an error.
type Result struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Details    Details `json:"details"`
	Message    string  `json:"message"`
}

// Verifier decides whether a payment proof is acceptable.
type Verifier interface {
	Verify(ctx context.Context, req Request) (*Result, error)
}
