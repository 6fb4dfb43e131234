package portal

import (
	"strconv"

	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type djRequest struct {
	Name       string          `json:"name"`
	ArtistName string          `json:"artist_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	CNPJ       string          `json:"cnpj"`
	BaseFee    decimal.Decimal `json:"base_fee"`
	Genres     string          `json:"genres"`
	Active     *bool           `json:"active"`
	Notes      string          `json:"notes"`
}

func (r djRequest) toInput() service.DJInput {
	return service.DJInput{
		Name:       r.Name,
		ArtistName: r.ArtistName,
		Email:      r.Email,
		Phone:      r.Phone,
		CNPJ:       r.CNPJ,
		BaseFee:    r.BaseFee,
		Genres:     r.Genres,
		Active:     r.Active,
		Notes:      r.Notes,
	}
}

// CreateDJ adds an artist to the roster.
func (h *Handler) CreateDJ(c *gin.Context) {
	var req djRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}
	if req.ArtistName == "" {
		handlershared.RespondError(c, response.CodeBadRequest, "artist_name_required", nil)
		return
	}

	dj, err := h.DJService.CreateDJ(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, djErrorRules, response.CodeInternal, "dj_create_failed")
		return
	}
	response.Success(c, dj)
}

// UpdateDJ edits a roster entry.
func (h *Handler) UpdateDJ(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req djRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	dj, err := h.DJService.UpdateDJ(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, djErrorRules, response.CodeInternal, "dj_update_failed")
		return
	}
	response.Success(c, dj)
}

// DeleteDJ removes an artist from the roster.
func (h *Handler) DeleteDJ(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.DJService.DeleteDJ(id); err != nil {
		respondWithMappedError(c, err, djErrorRules, response.CodeInternal, "dj_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetDJ fetches a roster entry.
func (h *Handler) GetDJ(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dj, err := h.DJService.GetDJ(id)
	if err != nil {
		respondWithMappedError(c, err, djErrorRules, response.CodeInternal, "dj_get_failed")
		return
	}
	response.Success(c, dj)
}

// ListDJs lists the roster.
func (h *Handler) ListDJs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	djs, total, err := h.DJService.ListDJs(repository.DJListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: c.Query("active") == "true",
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "dj_list_failed", err)
		return
	}

	response.SuccessWithPage(c, djs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
