package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/response"
)

// AvailabilityHandler exposes the toggle engine and the calendar read views.
type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

type toggleRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Note  string `json:"note" validate:"omitempty,max=280"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// Toggle flips the caller's availability for one date.
func (h *AvailabilityHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.availability.Toggle(requestContext(c), currentUserID(c), req.Date, req.Note, req.Color)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// List returns availability records scoped by role: artists see their own
// calendar, admins see everyone with artist identity attached.
func (h *AvailabilityHandler) List(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if currentRole(c) == models.RoleAdmin {
		rows, err := h.availability.ListAll(requestContext(c), start, end, c.Query("artist_id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"availabilities": rows})
		return
	}

	days, err := h.availability.ListForArtist(requestContext(c), currentUserID(c), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availabilities": days})
}

// ByDate lists every artist available on a single date.
func (h *AvailabilityHandler) ByDate(c *gin.Context) {
	rows, err := h.availability.ArtistsOnDate(requestContext(c), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artists": rows})
}

// Delete removes one availability record by id.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	err := h.availability.Delete(requestContext(c), c.Param("id"), currentUserID(c), currentRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
