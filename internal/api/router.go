package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/app"
	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/handlers"
	"github.com/easybookevent/artistcal/internal/middleware"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/internal/storage"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *app.Config
	JWT          *iauth.JWTService
	Users        *services.UserService
	Invites      *services.InviteService
	Profiles     *services.ProfileService
	Availability *services.AvailabilityService
	Blocked      *services.BlockedDateService
	Export       *services.ExportService
	Files        *storage.FileStore
}

func (d Deps) validate() error {
	switch {
	case d.Config == nil:
		return fmt.Errorf("config must be provided")
	case d.JWT == nil:
		return fmt.Errorf("jwt service must be provided")
	case d.Users == nil || d.Invites == nil || d.Profiles == nil:
		return fmt.Errorf("account services must be provided")
	case d.Availability == nil || d.Blocked == nil || d.Export == nil:
		return fmt.Errorf("calendar services must be provided")
	case d.Files == nil:
		return fmt.Errorf("file store must be provided")
	}
	return nil
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(deps.Config.Server.CORSOrigins...))
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	r.NoRoute(middleware.NotFoundHandler)

	r.GET("/health", handlers.Health())
	registerMonitoringRoutes(r, deps.Config)

	// Uploaded images are served directly from disk.
	r.Static(deps.Files.BaseURL(), deps.Files.Root())

	requireAuth := middleware.Auth(deps.JWT)
	api := r.Group("/api")

	registerAuthRoutes(r, api, requireAuth, deps)
	registerCalendarRoutes(api, requireAuth, deps)
	registerAdminRoutes(api, requireAuth, deps)

	return r, nil
}
