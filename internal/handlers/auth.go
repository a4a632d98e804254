package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/metrics"
	"github.com/easybookevent/artistcal/pkg/response"
)

// AuthHandler serves login, invitation-based registration and identity lookup.
type AuthHandler struct {
	users   *services.UserService
	invites *services.InviteService
	jwt     *iauth.JWTService
}

func NewAuthHandler(users *services.UserService, invites *services.InviteService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, invites: invites, jwt: jwt}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Timezone string `json:"timezone" validate:"omitempty,max=64"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges email/password credentials for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, err)
		return
	}

	token, err := h.jwt.GenerateAccessToken(iauth.AccessTokenInput{UserID: user.ID, Role: string(user.Role)})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	response.Success(c, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Register redeems the invitation token carried in ?token= and signs the new
// artist in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, services.ErrInvitationInvalid)
		return
	}

	user, err := h.invites.Consume(requestContext(c), token, req.Email, req.Password, req.Timezone)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err = h.jwt.GenerateAccessToken(iauth.AccessTokenInput{UserID: user.ID, Role: string(user.Role)})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sessionResponse{Token: token, User: user})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
