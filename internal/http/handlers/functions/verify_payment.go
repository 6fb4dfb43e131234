package functions

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type verifyPaymentRequest struct {
	PaymentID      string          `json:"paymentId"`
	ProofURL       string          `json:"proofUrl"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	ExpectedCNPJ   string          `json:"expectedCnpj"`
}

// VerifyPayment verifies a payment proof and, on acceptance, settles
// the payment in the same call. The response body is the raw
// verification result.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.PaymentID) == "" || strings.TrimSpace(req.ProofURL) == "" {
		respondError(c, http.StatusBadRequest, "paymentId and proofUrl are required")
		return
	}

	id, err := strconv.ParseUint(strings.TrimSpace(req.PaymentID), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "paymentId is invalid")
		return
	}

	payment, err := h.PaymentRepo.GetByID(uint(id))
	if err != nil {
		logger.Errorw("verify_payment_lookup_failed", "payment_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if payment == nil {
		respondError(c, http.StatusNotFound, "payment not found")
		return
	}

	expectedAmount := req.ExpectedAmount
	if expectedAmount.IsZero() {
		expectedAmount = payment.Amount.Decimal
	}
	expectedCNPJ := strings.TrimSpace(req.ExpectedCNPJ)
	if expectedCNPJ == "" {
		expectedCNPJ = h.Config.Verification.AgencyCNPJ
	}

	result, err := h.ProofVerifier.Verify(c.Request.Context(), verification.Request{
		PaymentID:       req.PaymentID,
		ProofURL:        req.ProofURL,
		ExpectedAmount:  expectedAmount,
		ExpectedCNPJ:    expectedCNPJ,
		ProofUploadedAt: payment.ProofUploadedAt,
	})
	if err != nil {
		logger.Errorw("verify_payment_verifier_failed", "payment_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "verification failed")
		return
	}

	// collapsed verify+commit: acceptance settles the payment here
	if result.Verified && payment.Status != constants.PaymentStatusPaid {
		now := time.Now()
		payment.Status = constants.PaymentStatusPaid
		payment.PaidAt = &now
		if payment.ProofURL == "" {
			payment.ProofURL = req.ProofURL
			payment.ProofUploadedAt = &now
		}
		if err := h.PaymentRepo.Update(payment); err != nil {
			logger.Errorw("verify_payment_commit_failed", "payment_id", id, "error", err)
			respondError(c, http.StatusInternalServerError, "internal error")
			return
		}
	}

	c.JSON(http.StatusOK, result)
}
