package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/response"
)

// InvitationHandler serves the admin invitation ledger plus the public token
// verification endpoint the registration page calls.
type InvitationHandler struct {
	invites *services.InviteService
}

func NewInvitationHandler(invites *services.InviteService) *InvitationHandler {
	return &InvitationHandler{invites: invites}
}

type createInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Create issues an invitation and emails the registration link.
func (h *InvitationHandler) Create(c *gin.Context) {
	var req createInvitationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invitation, err := h.invites.Create(requestContext(c), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, invitation)
}

// List returns every invitation, newest first.
func (h *InvitationHandler) List(c *gin.Context) {
	invitations, err := h.invites.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invitations": invitations})
}

// Delete revokes a pending invitation.
func (h *InvitationHandler) Delete(c *gin.Context) {
	if err := h.invites.Delete(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Verify reports the email behind a valid invitation token.
func (h *InvitationHandler) Verify(c *gin.Context) {
	email, err := h.invites.Verify(requestContext(c), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": email, "valid": true})
}
