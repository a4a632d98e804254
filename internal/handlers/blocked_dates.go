package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/response"
)

// BlockedDateHandler serves the global blocked-date list. Mutations are
// admin-only; the list is readable by every authenticated user so artist
// calendars can grey blocked days out.
type BlockedDateHandler struct {
	blocked *services.BlockedDateService
}

func NewBlockedDateHandler(blocked *services.BlockedDateService) *BlockedDateHandler {
	return &BlockedDateHandler{blocked: blocked}
}

type blockDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Note string `json:"note" validate:"omitempty,max=280"`
}

type updateBlockedDateRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note string `json:"note" validate:"omitempty,max=280"`
}

// Create blocks a date platform-wide and reports the cascade size.
func (h *BlockedDateHandler) Create(c *gin.Context) {
	var req blockDateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.blocked.Block(requestContext(c), req.Date, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// List returns blocked dates within the optional ?start/?end range.
func (h *BlockedDateHandler) List(c *gin.Context) {
	blocked, err := h.blocked.List(requestContext(c), c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blocked_dates": blocked})
}

// Update rewrites a blocked date's note, or moves it when a date is given.
func (h *BlockedDateHandler) Update(c *gin.Context) {
	var req updateBlockedDateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	blocked, err := h.blocked.Update(requestContext(c), c.Param("id"), req.Date, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, blocked)
}

// Delete unblocks a date. Previously removed availabilities stay removed.
func (h *BlockedDateHandler) Delete(c *gin.Context) {
	if err := h.blocked.Unblock(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
