package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/pkg/crypto"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)

// ArtistSummary is the admin listing row: account plus profile fields and the
// number of availability days currently marked.
type ArtistSummary struct {
	ID                string          `json:"id"`
	Email             string          `json:"email"`
	StageName         string          `json:"stage_name,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Link              string          `json:"link,omitempty"`
	NightlyRate       string          `json:"nightly_rate,omitempty"`
	Category          models.Category `json:"category,omitempty"`
	AvailabilityCount int64           `json:"availability_count"`
}

// UserService manages accounts: authentication, admin artist management, and
// the artist deletion cascade.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID fetches a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}
	return &user, nil
}

// ListArtists returns every artist account joined with profile data and the
// current availability count. One profile lookup per artist, as the listing
// is admin-only and small.
func (s *UserService) ListArtists(ctx context.Context) ([]ArtistSummary, error) {
	var artists []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleArtist).
		Order("created_at ASC").
		Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("user service: list artists: %w", err)
	}

	summaries := make([]ArtistSummary, 0, len(artists))
	for _, artist := range artists {
		summary := ArtistSummary{ID: artist.ID, Email: artist.Email}

		var profile models.ArtistProfile
		err := s.db.WithContext(ctx).Where("user_id = ?", artist.ID).First(&profile).Error
		switch {
		case err == nil:
			summary.StageName = profile.StageName
			summary.Phone = profile.Phone
			summary.Link = profile.Link
			summary.NightlyRate = profile.NightlyRate
			summary.Category = profile.Category
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("user service: load profile: %w", err)
		}

		if err := s.db.WithContext(ctx).
			Model(&models.AvailabilityDay{}).
			Where("artist_id = ?", artist.ID).
			Count(&summary.AvailabilityCount).Error; err != nil {
			return nil, fmt.Errorf("user service: count availabilities: %w", err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// DeleteArtist removes the artist and cascades to profile, availability days,
// and any invitations tied to the account email.
func (s *UserService) DeleteArtist(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artist models.User
		err := tx.Where("id = ? AND role = ?", id, models.RoleArtist).First(&artist).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("user service: find artist: %w", err)
		}

		if err := tx.Where("artist_id = ?", artist.ID).Delete(&models.AvailabilityDay{}).Error; err != nil {
			return fmt.Errorf("user service: delete availabilities: %w", err)
		}
		if err := tx.Where("user_id = ?", artist.ID).Delete(&models.ArtistProfile{}).Error; err != nil {
			return fmt.Errorf("user service: delete profile: %w", err)
		}
		if err := tx.Where("email = ?", artist.Email).Delete(&models.Invitation{}).Error; err != nil {
			return fmt.Errorf("user service: delete invitations: %w", err)
		}
		if err := tx.Delete(&artist).Error; err != nil {
			return fmt.Errorf("user service: delete user: %w", err)
		}
		return nil
	})
}
