package portal

import (
	"strconv"

	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type createAccountRequest struct {
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name"`
	Role     string      `json:"role"`
	Metadata models.JSON `json:"user_metadata"`
}

// CreateAccount provisions a portal login (finance only, via RBAC).
func (h *Handler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	account, err := h.AccountService.Provision(service.ProvisionInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "account_create_failed")
		return
	}
	response.Success(c, account)
}

// GetAccount fetches a portal login.
func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	account, err := h.AccountService.GetAccount(id)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "account_get_failed")
		return
	}
	response.Success(c, account)
}

// ListAccounts lists portal logins.
func (h *Handler) ListAccounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	accounts, total, err := h.AccountService.ListAccounts(repository.AccountListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "account_list_failed", err)
		return
	}

	response.SuccessWithPage(c, accounts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

type accountStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetAccountStatus enables or disables a login.
func (h *Handler) SetAccountStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req accountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	account, err := h.AccountService.SetStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "account_status_failed")
		return
	}
	response.Success(c, account)
}
