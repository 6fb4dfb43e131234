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

type eventRequest struct {
	Title      string          `json:"title"`
	Date       time.Time       `json:"date"`
	Venue      string          `json:"venue"`
	City       string          `json:"city"`
	DJID       uint            `json:"dj_id"`
	CacheValue decimal.Decimal `json:"cache_value"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
}

func (r eventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:      r.Title,
		Date:       r.Date,
		Venue:      r.Venue,
		City:       r.City,
		DJID:       r.DJID,
		CacheValue: r.CacheValue,
		Status:     r.Status,
		Notes:      r.Notes,
	}
}

// CreateEvent books an event.
func (h *Handler) CreateEvent(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}
	if req.Title == "" || req.Date.IsZero() || req.DJID == 0 {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", nil)
		return
	}

	event, err := h.EventService.CreateEvent(req.toInput(), actor)
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, "event_create_failed")
		return
	}
	response.Success(c, event)
}

// UpdateEvent edits a booking.
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	event, err := h.EventService.UpdateEvent(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, "event_update_failed")
		return
	}
	response.Success(c, event)
}

// DeleteEvent removes a booking.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.EventService.DeleteEvent(id); err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, "event_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetEvent fetches a booking.
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	event, err := h.EventService.GetEvent(id)
	if err != nil {
		respondWithMappedError(c, err, eventErrorRules, response.CodeInternal, "event_get_failed")
		return
	}
	response.Success(c, event)
}

// ListEvents lists bookings with filters.
func (h *Handler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.EventListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		WithDJ:   true,
	}
	if v, err := strconv.ParseUint(c.Query("dj_id"), 10, 32); err == nil {
		filter.DJID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("producer_id"), 10, 32); err == nil {
		filter.ProducerID = uint(v)
	}

	events, total, err := h.EventService.ListEvents(filter)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "event_list_failed", err)
		return
	}

	response.SuccessWithPage(c, events, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
