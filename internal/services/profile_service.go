package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/models"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
)

var (
	// ErrProfileNotFound indicates the artist has not written a profile yet.
	ErrProfileNotFound = apperrors.New("PROFILE_NOT_FOUND", "Profile not found", http.StatusNotFound)
	// ErrInvalidCategory rejects category values outside DJ/Group.
	ErrInvalidCategory = apperrors.New("INVALID_CATEGORY", "Category must be DJ or Group", http.StatusBadRequest)
	// ErrGalleryFull rejects uploads beyond the gallery image cap.
	ErrGalleryFull = apperrors.New("GALLERY_FULL", "The gallery already holds the maximum number of images", http.StatusBadRequest)
)

// ProfileInput carries the artist-editable profile fields.
type ProfileInput struct {
	StageName   string
	Phone       string
	Link        string
	NightlyRate string
	Bio         string
}

// ProfileService manages artist profile metadata and media references.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(db *gorm.DB) (*ProfileService, error) {
	if db == nil {
		return nil, errors.New("profile service: db is required")
	}
	return &ProfileService{db: db}, nil
}

// Upsert creates the profile on first write and updates it afterwards.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (*models.ArtistProfile, error) {
	input.StageName = strings.TrimSpace(input.StageName)
	if input.StageName == "" {
		return nil, apperrors.NewBadRequest("stage name is required")
	}
	if len(input.Bio) > 500 {
		return nil, apperrors.NewBadRequest("bio must be at most 500 characters")
	}

	var profile models.ArtistProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.ArtistProfile{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("profile service: find: %w", err)
	}

	profile.StageName = input.StageName
	profile.Phone = strings.TrimSpace(input.Phone)
	profile.Link = strings.TrimSpace(input.Link)
	profile.NightlyRate = strings.TrimSpace(input.NightlyRate)
	profile.Bio = strings.TrimSpace(input.Bio)

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: save: %w", err)
	}
	return &profile, nil
}

// Get returns the artist's own profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile service: find: %w", err)
	}
	return &profile, nil
}

// SetCategory assigns the DJ/Group category, creating the profile lazily when
// the artist has not written one yet.
func (s *ProfileService) SetCategory(ctx context.Context, userID string, category models.Category) (*models.ArtistProfile, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("id = ? AND role = ?", userID, models.RoleArtist).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("profile service: find artist: %w", err)
	}

	var profile models.ArtistProfile
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.ArtistProfile{UserID: userID, StageName: user.Email}
	case err != nil:
		return nil, fmt.Errorf("profile service: find: %w", err)
	}

	profile.Category = category
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: save: %w", err)
	}
	return &profile, nil
}

// SetLogo records the uploaded logo reference.
func (s *ProfileService) SetLogo(ctx context.Context, userID, logoURL string) (*models.ArtistProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.LogoURL = logoURL
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: save logo: %w", err)
	}
	return profile, nil
}

// AddGalleryImage appends an uploaded image reference, capped at
// models.MaxGalleryImages entries.
func (s *ProfileService) AddGalleryImage(ctx context.Context, userID, imageURL string) (*models.ArtistProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(profile.Gallery) >= models.MaxGalleryImages {
		return nil, ErrGalleryFull
	}

	profile.Gallery = append(profile.Gallery, imageURL)
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: save gallery: %w", err)
	}
	return profile, nil
}

// RemoveGalleryImage drops the gallery entry at the given position.
func (s *ProfileService) RemoveGalleryImage(ctx context.Context, userID string, index int) (*models.ArtistProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(profile.Gallery) {
		return nil, apperrors.NewBadRequest("gallery index out of range")
	}

	profile.Gallery = append(profile.Gallery[:index], profile.Gallery[index+1:]...)
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: save gallery: %w", err)
	}
	return profile, nil
}
