package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/pkg/crypto"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
	"github.com/easybookevent/artistcal/pkg/logger"
	"github.com/easybookevent/artistcal/pkg/mail"
	"github.com/easybookevent/artistcal/pkg/metrics"
)

const (
	defaultInviteExpiry     = 7 * 24 * time.Hour
	defaultInviteTokenBytes = 32
)

// Invalid and expired tokens are deliberately indistinguishable to callers.
var (
	ErrInvitationInvalid = apperrors.New("INVITATION_INVALID", "Invitation token is invalid or expired", http.StatusBadRequest)
	ErrInvitationPending = apperrors.New("INVITATION_PENDING", "An invitation is already pending for this email", http.StatusBadRequest)
	ErrEmailInUse        = apperrors.New("EMAIL_IN_USE", "A user with this email already exists", http.StatusBadRequest)
	ErrInvitationMissing = apperrors.New("INVITATION_NOT_FOUND", "Invitation not found", http.StatusNotFound)
)

// InviteOption customises InviteService behaviour.
type InviteOption func(*InviteService)

// WithInviteBaseURL configures the base URL used to build invite hyperlinks.
func WithInviteBaseURL(url string) InviteOption {
	return func(s *InviteService) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithInviteExpiry overrides the invitation lifetime.
func WithInviteExpiry(d time.Duration) InviteOption {
	return func(s *InviteService) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithInviteClock injects a custom clock primarily for testing.
func WithInviteClock(clock func() time.Time) InviteOption {
	return func(s *InviteService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// InviteService manages the invitation ledger and artist registration.
type InviteService struct {
	db      *gorm.DB
	mailer  mail.Mailer
	baseURL string
	expiry  time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewInviteService constructs an InviteService with the provided dependencies.
func NewInviteService(db *gorm.DB, mailer mail.Mailer, opts ...InviteOption) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}

	service := &InviteService{
		db:     db,
		mailer: mailer,
		expiry: defaultInviteExpiry,
		now:    time.Now,
		log:    logger.WithModule("invitations"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Create issues a new invitation for the email address and dispatches the
// invitation email. Delivery failures are logged but never fail the creation.
func (s *InviteService) Create(ctx context.Context, email string) (*models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}

	token, err := crypto.GenerateToken(defaultInviteTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("invite service: generate token: %w", err)
	}

	now := s.now()
	invitation := models.Invitation{
		Email:     email,
		Token:     token,
		Status:    models.InvitationSent,
		ExpiresAt: now.Add(s.expiry),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&userCount).Error; err != nil {
			return fmt.Errorf("invite service: check user: %w", err)
		}
		if userCount > 0 {
			return ErrEmailInUse
		}

		var pending int64
		if err := tx.Model(&models.Invitation{}).
			Where("email = ? AND status = ? AND expires_at > ?", email, models.InvitationSent, now).
			Count(&pending).Error; err != nil {
			return fmt.Errorf("invite service: check pending: %w", err)
		}
		if pending > 0 {
			return ErrInvitationPending
		}

		return tx.Create(&invitation).Error
	})
	if err != nil {
		return nil, err
	}

	s.sendInvitationEmail(ctx, &invitation)

	return &invitation, nil
}

// Verify reports the email tied to a valid invitation token. Unknown, lapsed,
// and already-consumed tokens all yield the same error.
func (s *InviteService) Verify(ctx context.Context, token string) (string, error) {
	invitation, err := s.findSent(ctx, s.db, token)
	if err != nil {
		return "", err
	}
	return invitation.Email, nil
}

// Consume redeems the invitation and creates the artist account in a single
// transaction, so a crash cannot leave an accepted invitation without a user.
func (s *InviteService) Consume(ctx context.Context, token, email, password, tz string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewBadRequest("email and password are required")
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("invite service: hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		Role:     models.RoleArtist,
	}
	if tz = strings.TrimSpace(tz); tz != "" {
		user.Timezone = tz
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invitation, err := s.findSent(ctx, tx, token)
		if err != nil {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrEmailInUse
			}
			return fmt.Errorf("invite service: create user: %w", err)
		}

		return tx.Model(invitation).Update("status", models.InvitationAccepted).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns every invitation, newest first.
func (s *InviteService) List(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("invite service: list: %w", err)
	}
	return invitations, nil
}

// Delete removes an invitation by id.
func (s *InviteService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invitation{})
	if result.Error != nil {
		return fmt.Errorf("invite service: delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvitationMissing
	}
	return nil
}

// SweepExpired transitions lapsed sent invitations to expired status. Lazy
// expiry checks remain authoritative; the sweep only keeps admin listings
// honest. Returns the number of rows transitioned.
func (s *InviteService) SweepExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("status = ? AND expires_at <= ?", models.InvitationSent, s.now()).
		Update("status", models.InvitationExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("invite service: sweep: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *InviteService) findSent(ctx context.Context, tx *gorm.DB, token string) (*models.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationInvalid
	}

	var invitation models.Invitation
	err := tx.WithContext(ctx).
		Where("token = ? AND status = ?", token, models.InvitationSent).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, fmt.Errorf("invite service: find: %w", err)
	}

	if invitation.Lapsed(s.now()) {
		return nil, ErrInvitationInvalid
	}

	return &invitation, nil
}

func (s *InviteService) sendInvitationEmail(ctx context.Context, invitation *models.Invitation) {
	if s.mailer == nil {
		return
	}

	link := invitation.Token
	if s.baseURL != "" {
		link = fmt.Sprintf("%s/%s", s.baseURL, invitation.Token)
	}

	msg := mail.Message{
		To:      []string{invitation.Email},
		Subject: "Invitation - Availability Calendar",
		Body: fmt.Sprintf("Hello,\n\nYou have been invited to join the artist availability calendar. "+
			"Use the following link to create your account:\n%s\n\nThis link expires in %d days.\n",
			link, int(s.expiry.Hours()/24)),
	}

	switch err := s.mailer.Send(ctx, msg); {
	case err == nil:
		metrics.InvitationEmails.WithLabelValues("sent").Inc()
	case errors.Is(err, mail.ErrSMTPDisabled):
		metrics.InvitationEmails.WithLabelValues("disabled").Inc()
	default:
		metrics.InvitationEmails.WithLabelValues("failed").Inc()
		s.log.Warn("invitation email delivery failed",
			zap.String("email", invitation.Email),
			zap.Error(err),
		)
	}
}
