package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/middleware"
	"github.com/easybookevent/artistcal/internal/models"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	v, ok := c.Get(middleware.CtxUserIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// currentRole returns the authenticated user's role claim.
func currentRole(c *gin.Context) models.Role {
	v, ok := c.Get(middleware.CtxClaimsKey)
	if !ok {
		return ""
	}
	claims, ok := v.(*iauth.Claims)
	if !ok {
		return ""
	}
	return models.Role(claims.Role)
}
