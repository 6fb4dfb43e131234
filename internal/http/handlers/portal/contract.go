package portal

import (
	"strconv"

	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type contractRequest struct {
	EventID uint   `json:"event_id"`
	Status  string `json:"status"`
	FileURL string `json:"file_url"`
	Notes   string `json:"notes"`
}

// CreateContract drafts a contract for an event.
func (h *Handler) CreateContract(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}
	if req.EventID == 0 {
		handlershared.RespondError(c, response.CodeBadRequest, "event_id_required", nil)
		return
	}

	contract, err := h.ContractService.CreateContract(service.ContractInput{
		EventID: req.EventID,
		Status:  req.Status,
		FileURL: req.FileURL,
		Notes:   req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, contractErrorRules, response.CodeInternal, "contract_create_failed")
		return
	}
	response.Success(c, contract)
}

// UpdateContract edits a contract.
func (h *Handler) UpdateContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	contract, err := h.ContractService.UpdateContract(id, service.ContractInput{
		Status:  req.Status,
		FileURL: req.FileURL,
		Notes:   req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, contractErrorRules, response.CodeInternal, "contract_update_failed")
		return
	}
	response.Success(c, contract)
}

// DeleteContract removes a contract.
func (h *Handler) DeleteContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ContractService.DeleteContract(id); err != nil {
		respondWithMappedError(c, err, contractErrorRules, response.CodeInternal, "contract_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetContract fetches a contract.
func (h *Handler) GetContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	contract, err := h.ContractService.GetContract(id)
	if err != nil {
		respondWithMappedError(c, err, contractErrorRules, response.CodeInternal, "contract_get_failed")
		return
	}
	response.Success(c, contract)
}

// ListContracts lists contracts with filters.
func (h *Handler) ListContracts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ContractListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if v, err := strconv.ParseUint(c.Query("event_id"), 10, 32); err == nil {
		filter.EventID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("dj_id"), 10, 32); err == nil {
		filter.DJID = uint(v)
	}

	contracts, total, err := h.ContractService.ListContracts(filter)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "contract_list_failed", err)
		return
	}

	response.SuccessWithPage(c, contracts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
