package functions

import (
	"errors"
	"net/http"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	UserMetadata models.JSON `json:"user_metadata"`
}

// CreateUser provisions an account with the email pre-confirmed.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.AccountService.Provision(service.ProvisionInput{
		Email:    req.Email,
		Password: req.Password,
		Metadata: req.UserMetadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountExists):
			respondError(c, http.StatusBadRequest, "account already exists")
		case errors.Is(err, service.ErrAccountEmailRequired), errors.Is(err, service.ErrAccountPasswordRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			logger.Errorw("create_user_failed", "email", req.Email, "error", err)
			respondError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account})
}
