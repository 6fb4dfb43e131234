package portal

import (
	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

func getAccountID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "account_id")
}

// getActor builds the lifecycle actor from the auth middleware
// context values.
func getActor(c *gin.Context) (service.Actor, bool) {
	accountID, ok := getAccountID(c)
	if !ok {
		return service.Actor{}, false
	}
	actor := service.Actor{AccountID: accountID}
	if v, ok := c.Get("account_email"); ok {
		if email, ok := v.(string); ok {
			actor.Email = email
		}
	}
	if v, ok := c.Get("account_role"); ok {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	if v, ok := c.Get("is_super"); ok {
		if isSuper, ok := v.(bool); ok {
			actor.IsSuper = isSuper
		}
	}
	return actor, true
}
