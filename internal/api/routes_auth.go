package api

import (
	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/handlers"
)

func registerAuthRoutes(engine *gin.Engine, api *gin.RouterGroup, requireAuth gin.HandlerFunc, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Invites, deps.JWT)
	invitationHandler := handlers.NewInvitationHandler(deps.Invites)

	auth := engine.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// The registration page validates its token before showing the form.
	engine.GET("/api/invitations/verify/:token", invitationHandler.Verify)

	api.GET("/auth/me", requireAuth, authHandler.Me)
}
