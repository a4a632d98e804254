package api

import (
	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/handlers"
	"github.com/easybookevent/artistcal/internal/middleware"
	"github.com/easybookevent/artistcal/internal/models"
)

func registerAdminRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, deps Deps) {
	invitationHandler := handlers.NewInvitationHandler(deps.Invites)
	artistHandler := handlers.NewArtistHandler(deps.Users, deps.Profiles)
	availabilityHandler := handlers.NewAvailabilityHandler(deps.Availability)
	blockedHandler := handlers.NewBlockedDateHandler(deps.Blocked)
	exportHandler := handlers.NewExportHandler(deps.Export)

	admin := api.Group("", requireAuth, middleware.RequireRole(models.RoleAdmin))

	invitations := admin.Group("/invitations")
	{
		invitations.POST("", invitationHandler.Create)
		invitations.GET("", invitationHandler.List)
		invitations.DELETE("/:id", invitationHandler.Delete)
	}

	artists := admin.Group("/artists")
	{
		artists.GET("", artistHandler.List)
		artists.PATCH("/:id/category", artistHandler.SetCategory)
		artists.DELETE("/:id", artistHandler.Delete)
	}

	admin.GET("/availability-days/:date", availabilityHandler.ByDate)

	blocked := admin.Group("/blocked-dates")
	{
		blocked.POST("", blockedHandler.Create)
		blocked.PUT("/:id", blockedHandler.Update)
		blocked.DELETE("/:id", blockedHandler.Delete)
	}

	admin.GET("/export/csv", exportHandler.CSV)
}
