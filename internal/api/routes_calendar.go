package api

import (
	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/handlers"
	"github.com/easybookevent/artistcal/internal/middleware"
	"github.com/easybookevent/artistcal/internal/models"
)

// Calendar routes shared by artists and admins, plus the artist-only profile
// surface.
func registerCalendarRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, deps Deps) {
	availabilityHandler := handlers.NewAvailabilityHandler(deps.Availability)
	blockedHandler := handlers.NewBlockedDateHandler(deps.Blocked)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.Files)

	requireArtist := middleware.RequireRole(models.RoleArtist)

	days := api.Group("/availability-days", requireAuth)
	{
		days.POST("/toggle", requireArtist, availabilityHandler.Toggle)
		days.GET("", availabilityHandler.List)
		days.DELETE("/:id", availabilityHandler.Delete)
	}

	// Read-only for artists so their calendars can grey blocked days out.
	api.GET("/blocked-dates", requireAuth, blockedHandler.List)

	profile := api.Group("/profile", requireAuth, requireArtist)
	{
		profile.GET("", profileHandler.Get)
		profile.POST("", profileHandler.Update)
		profile.POST("/upload-logo", profileHandler.UploadLogo)
		profile.POST("/upload-gallery", profileHandler.UploadGalleryImage)
		profile.DELETE("/remove-gallery/:index", profileHandler.RemoveGalleryImage)
	}
}
