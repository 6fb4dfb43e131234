package portal

import (
	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	account, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			handlershared.RespondError(c, response.CodeUnauthorized, "invalid_credentials", nil)
		case service.ErrAccountDisabled:
			handlershared.RespondError(c, response.CodeForbidden, "account_disabled", nil)
		default:
			handlershared.RespondError(c, response.CodeInternal, "login_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"account":    account,
	})
}

// Me returns the authenticated account.
func (h *Handler) Me(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	account, err := h.AccountService.GetAccount(accountID)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "account_get_failed")
		return
	}
	response.Success(c, account)
}

// Logout invalidates all tokens of the account.
func (h *Handler) Logout(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(accountID); err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "logout_failed")
		return
	}
	response.Success(c, nil)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the account password.
func (h *Handler) ChangePassword(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "request_invalid", err)
		return
	}

	if err := h.AuthService.ChangePassword(accountID, req.OldPassword, req.NewPassword); err != nil {
		switch err {
		case service.ErrInvalidPassword:
			handlershared.RespondError(c, response.CodeBadRequest, "old_password_invalid", nil)
		case service.ErrAccountPasswordRequired:
			handlershared.RespondError(c, response.CodeBadRequest, "password_required", nil)
		default:
			respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "password_change_failed")
		}
		return
	}
	response.Success(c, nil)
}
