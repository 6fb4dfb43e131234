package portal

import (
	"strconv"
	"time"

	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createPaymentRequest struct {
	EventID        uint             `json:"event_id" binding:"required"`
	Amount         *decimal.Decimal `json:"amount"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	DueAt          time.Time        `json:"due_at" binding:"required"`
	Notes          string           `json:"notes"`
}

// CreatePayment creates a payment obligation for an event.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	payment, err := h.PaymentService.CreatePayment(service.CreatePaymentInput{
		EventID:        req.EventID,
		Amount:         req.Amount,
		CommissionRate: req.CommissionRate,
		DueAt:          req.DueAt,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "payment_create_failed")
		return
	}
	response.Success(c, payment)
}

// GetPayment fetches one obligation, with the derived overdue view.
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.GetPayment(id)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "payment_get_failed")
		return
	}
	response.Success(c, gin.H{
		"payment":    payment,
		"is_overdue": payment.IsOverdue(time.Now()),
	})
}

// ListPayments lists obligations with filters.
func (h *Handler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PaymentListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		OverdueOnly: c.Query("overdue") == "true",
	}
	if v, err := strconv.ParseUint(c.Query("event_id"), 10, 32); err == nil {
		filter.EventID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("dj_id"), 10, 32); err == nil {
		filter.DJID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("producer_id"), 10, 32); err == nil {
		filter.ProducerID = uint(v)
	}

	payments, total, err := h.PaymentService.ListPayments(filter)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "payment_list_failed", err)
		return
	}

	response.SuccessWithPage(c, payments, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// SubmitProof attaches a proof document (multipart upload).
func (h *Handler) SubmitProof(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := getActor(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "proof_required", nil)
		return
	}
	description := c.PostForm("description")

	payment, err := h.PaymentService.SubmitProof(c.Request.Context(), id, file, description, actor)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "proof_submit_failed")
		return
	}
	response.Success(c, payment)
}

// ClearProof detaches the proof so a new one can be submitted.
func (h *Handler) ClearProof(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := getActor(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.ClearProof(c.Request.Context(), id, actor)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "proof_clear_failed")
		return
	}
	response.Success(c, payment)
}

// VerifyPayment runs the verifier against the attached proof. A
// rejection is a success response carrying the verifier result.
func (h *Handler) VerifyPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, payment, err := h.PaymentService.Verify(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "payment_verify_failed")
		return
	}
	response.Success(c, gin.H{
		"result":  result,
		"payment": payment,
	})
}

// MarkPaid settles a payment manually, bypassing the verifier.
func (h *Handler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := getActor(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.ManualMarkPaid(id, actor)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "payment_mark_paid_failed")
		return
	}
	response.Success(c, payment)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		handlershared.RespondError(c, response.CodeBadRequest, "id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
