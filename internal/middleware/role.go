package middleware

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/pkg/errors"
	"github.com/easybookevent/artistcal/pkg/response"
)

// RequireRole checks that the authenticated user holds the given role. Roles
// are fixed at account creation, so the role claim in the token never goes
// stale.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxClaimsKey)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := v.(*iauth.Claims)
		if !ok || models.Role(claims.Role) != role {
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
