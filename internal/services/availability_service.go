package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/models"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
	"github.com/easybookevent/artistcal/pkg/metrics"
)

// DefaultMaxMonthsAhead bounds the forward planning horizon; months are
// approximated as 30 days.
const DefaultMaxMonthsAhead = 18

// UnknownArtistName is the display fallback for rows whose artist account no
// longer exists.
const UnknownArtistName = "unknown"

var (
	ErrPastDate      = apperrors.New("DATE_IN_PAST", "Availability cannot be set for past dates", http.StatusBadRequest)
	ErrBeyondHorizon = apperrors.New("DATE_BEYOND_HORIZON", "Availability cannot be set that far ahead", http.StatusBadRequest)
	ErrDateBlocked   = apperrors.New("DATE_BLOCKED", "This date has been blocked by the administrator", http.StatusBadRequest)

	// ErrAvailabilityNotFound indicates no record matches the requested id.
	ErrAvailabilityNotFound = apperrors.New("AVAILABILITY_NOT_FOUND", "Availability record not found", http.StatusNotFound)
)

// ToggleAction describes the outcome of a toggle call.
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

// ToggleResult reports the state flip performed for (artist, date).
type ToggleResult struct {
	Action    ToggleAction            `json:"action"`
	Date      string                  `json:"date"`
	Available bool                    `json:"available"`
	Record    *models.AvailabilityDay `json:"record,omitempty"`
}

// EnrichedAvailability is an availability day joined with artist identity for
// the admin aggregation views.
type EnrichedAvailability struct {
	models.AvailabilityDay
	ArtistName     string          `json:"artist_name"`
	ArtistEmail    string          `json:"artist_email"`
	ArtistCategory models.Category `json:"artist_category,omitempty"`
	NightlyRate    string          `json:"nightly_rate,omitempty"`
}

// AvailabilityOption customises AvailabilityService behaviour.
type AvailabilityOption func(*AvailabilityService)

// WithAvailabilityClock injects a custom clock primarily for testing.
func WithAvailabilityClock(clock func() time.Time) AvailabilityOption {
	return func(s *AvailabilityService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithMaxMonthsAhead overrides the planning horizon.
func WithMaxMonthsAhead(months int) AvailabilityOption {
	return func(s *AvailabilityService) {
		if months > 0 {
			s.maxMonthsAhead = months
		}
	}
}

// AvailabilityService implements the toggle engine: the single mutation verb
// for availability days, plus the role-scoped read views.
type AvailabilityService struct {
	db             *gorm.DB
	now            func() time.Time
	maxMonthsAhead int
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(db *gorm.DB, opts ...AvailabilityOption) (*AvailabilityService, error) {
	if db == nil {
		return nil, errors.New("availability service: db is required")
	}

	service := &AvailabilityService{
		db:             db,
		now:            time.Now,
		maxMonthsAhead: DefaultMaxMonthsAhead,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Toggle flips the presence of an availability record for (artist, date).
// Preconditions run in order: the date must not be in the past, must fall
// within the planning horizon, and must not be blocked. The flip and a second
// blocked-date check run inside one transaction so a concurrent block cannot
// leave a stray record behind.
func (s *AvailabilityService) Toggle(ctx context.Context, artistID, date, note, color string) (*ToggleResult, error) {
	parsed, err := parseDate(date)
	if err != nil {
		metrics.AvailabilityToggles.WithLabelValues("rejected").Inc()
		return nil, err
	}
	date = parsed.Format(DateLayout)

	currentDay := today(s.now())
	if parsed.Before(currentDay) {
		metrics.AvailabilityToggles.WithLabelValues("rejected").Inc()
		return nil, ErrPastDate
	}
	horizon := currentDay.AddDate(0, 0, s.maxMonthsAhead*30)
	if parsed.After(horizon) {
		metrics.AvailabilityToggles.WithLabelValues("rejected").Inc()
		return nil, ErrBeyondHorizon
	}

	if len(note) > models.MaxNoteLength {
		metrics.AvailabilityToggles.WithLabelValues("rejected").Inc()
		return nil, apperrors.NewBadRequest("note must be at most 280 characters")
	}

	if color = strings.TrimSpace(color); color == "" {
		color = models.DefaultAvailabilityColor
	}

	var result ToggleResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blocked int64
		if err := tx.Model(&models.BlockedDate{}).Where("date = ?", date).Count(&blocked).Error; err != nil {
			return fmt.Errorf("availability service: check blocked: %w", err)
		}
		if blocked > 0 {
			return ErrDateBlocked
		}

		var existing models.AvailabilityDay
		err := tx.Where("artist_id = ? AND date = ?", artistID, date).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("availability service: delete: %w", err)
			}
			result = ToggleResult{Action: ToggleRemoved, Date: date, Available: false}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := models.AvailabilityDay{
				ArtistID: artistID,
				Date:     date,
				Note:     note,
				Color:    color,
			}
			if err := tx.Create(&record).Error; err != nil {
				if isUniqueConstraintError(err) {
					return apperrors.NewBadRequest("a concurrent toggle already marked this date")
				}
				return fmt.Errorf("availability service: create: %w", err)
			}
			result = ToggleResult{Action: ToggleAdded, Date: date, Available: true, Record: &record}
			return nil
		default:
			return fmt.Errorf("availability service: find: %w", err)
		}
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusBadRequest {
			metrics.AvailabilityToggles.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	metrics.AvailabilityToggles.WithLabelValues(string(result.Action)).Inc()
	return &result, nil
}

// ListForArtist returns the artist's own records within the optional range.
func (s *AvailabilityService) ListForArtist(ctx context.Context, artistID, start, end string) ([]models.AvailabilityDay, error) {
	if _, _, err := validDateRange(start, end); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("artist_id = ?", artistID)
	query = applyDateRange(query, start, end)

	var days []models.AvailabilityDay
	if err := query.Order("date ASC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("availability service: list: %w", err)
	}
	return days, nil
}

// ListAll returns every availability record within the optional range,
// enriched with artist identity. One user/profile lookup per row, matching
// the admin dashboard's modest scale.
func (s *AvailabilityService) ListAll(ctx context.Context, start, end, artistID string) ([]EnrichedAvailability, error) {
	if _, _, err := validDateRange(start, end); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.AvailabilityDay{})
	query = applyDateRange(query, start, end)
	if artistID != "" {
		query = query.Where("artist_id = ?", artistID)
	}

	var days []models.AvailabilityDay
	if err := query.Order("date ASC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("availability service: list: %w", err)
	}

	enriched := make([]EnrichedAvailability, 0, len(days))
	for _, day := range days {
		row := EnrichedAvailability{AvailabilityDay: day}
		row.ArtistName, row.ArtistEmail, row.ArtistCategory, row.NightlyRate = s.artistIdentity(ctx, day.ArtistID)
		enriched = append(enriched, row)
	}
	return enriched, nil
}

// ArtistsOnDate lists the artists with an availability record on one date.
func (s *AvailabilityService) ArtistsOnDate(ctx context.Context, date string) ([]EnrichedAvailability, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.ListAll(ctx, parsed.Format(DateLayout), parsed.Format(DateLayout), "")
}

// Delete removes a single availability record. Artists may only remove their
// own records; admins may remove any.
func (s *AvailabilityService) Delete(ctx context.Context, id, callerID string, callerRole models.Role) error {
	var record models.AvailabilityDay
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		return fmt.Errorf("availability service: find: %w", err)
	}

	if callerRole != models.RoleAdmin && record.ArtistID != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&record).Error; err != nil {
		return fmt.Errorf("availability service: delete: %w", err)
	}
	return nil
}

// artistIdentity resolves display fields for one artist, falling back to the
// account email without a profile and to a placeholder without a user.
func (s *AvailabilityService) artistIdentity(ctx context.Context, artistID string) (name, email string, category models.Category, rate string) {
	name = UnknownArtistName

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", artistID).First(&user).Error; err != nil {
		return name, email, category, rate
	}
	name = user.Email
	email = user.Email

	var profile models.ArtistProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", artistID).First(&profile).Error; err != nil {
		return name, email, category, rate
	}
	if profile.StageName != "" {
		name = profile.StageName
	}
	return name, email, profile.Category, profile.NightlyRate
}

func applyDateRange(query *gorm.DB, start, end string) *gorm.DB {
	// ISO dates compare correctly as strings.
	if start != "" {
		query = query.Where("date >= ?", start)
	}
	if end != "" {
		query = query.Where("date <= ?", end)
	}
	return query
}
