package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/response"
)

// ArtistHandler serves the admin roster views and artist management.
type ArtistHandler struct {
	users    *services.UserService
	profiles *services.ProfileService
}

func NewArtistHandler(users *services.UserService, profiles *services.ProfileService) *ArtistHandler {
	return &ArtistHandler{users: users, profiles: profiles}
}

type setCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// List returns every artist with profile data and availability counts.
func (h *ArtistHandler) List(c *gin.Context) {
	artists, err := h.users.ListArtists(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artists": artists})
}

// SetCategory assigns the DJ/Group category to an artist.
func (h *ArtistHandler) SetCategory(c *gin.Context) {
	var req setCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.SetCategory(requestContext(c), c.Param("id"), models.Category(req.Category))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Delete removes an artist account together with its profile, availability
// records and invitations.
func (h *ArtistHandler) Delete(c *gin.Context) {
	if err := h.users.DeleteArtist(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
