package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/models"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
	"github.com/easybookevent/artistcal/pkg/logger"
	"github.com/easybookevent/artistcal/pkg/metrics"
)

var (
	ErrDateAlreadyBlocked = apperrors.New("DATE_ALREADY_BLOCKED", "This date is already blocked", http.StatusBadRequest)
	ErrBlockedDateMissing = apperrors.New("BLOCKED_DATE_NOT_FOUND", "Blocked date not found", http.StatusNotFound)
)

// BlockResult reports a newly blocked date and the number of availability
// records the block removed.
type BlockResult struct {
	Blocked *models.BlockedDate `json:"blocked"`
	Removed int64               `json:"removed_availabilities"`
}

// BlockedDateService manages the global blocked-date list. Blocking a date
// cascades onto every artist's availability for that date.
type BlockedDateService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewBlockedDateService constructs a BlockedDateService.
func NewBlockedDateService(db *gorm.DB) (*BlockedDateService, error) {
	if db == nil {
		return nil, errors.New("blocked date service: db is required")
	}
	return &BlockedDateService{db: db, log: logger.WithModule("blocked_dates")}, nil
}

// Block marks a date unavailable platform-wide and purges all availability
// records on it in the same transaction.
func (s *BlockedDateService) Block(ctx context.Context, date, note string) (*BlockResult, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	date = parsed.Format(DateLayout)

	result := &BlockResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		blocked := models.BlockedDate{Date: date, Note: strings.TrimSpace(note)}
		if err := tx.Create(&blocked).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrDateAlreadyBlocked
			}
			return fmt.Errorf("blocked date service: create: %w", err)
		}

		purge := tx.Where("date = ?", date).Delete(&models.AvailabilityDay{})
		if purge.Error != nil {
			return fmt.Errorf("blocked date service: purge availabilities: %w", purge.Error)
		}

		result.Blocked = &blocked
		result.Removed = purge.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BlockedDateCascades.Add(float64(result.Removed))
	s.log.Info("date blocked",
		zap.String("date", date),
		zap.Int64("removed_availabilities", result.Removed))
	return result, nil
}

// Update rewrites a blocked date's note and, when a new date is given, moves
// the block there. Moving re-runs the availability purge for the new date;
// the old date's purged availabilities are not restored.
func (s *BlockedDateService) Update(ctx context.Context, id, date, note string) (*models.BlockedDate, error) {
	var blocked models.BlockedDate
	var purged int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&blocked).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlockedDateMissing
			}
			return fmt.Errorf("blocked date service: find: %w", err)
		}

		blocked.Note = strings.TrimSpace(note)
		if date != "" && date != blocked.Date {
			if _, err := parseDate(date); err != nil {
				return err
			}
			blocked.Date = date
		}

		if err := tx.Model(&blocked).
			Updates(map[string]any{"date": blocked.Date, "note": blocked.Note}).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrDateAlreadyBlocked
			}
			return fmt.Errorf("blocked date service: update: %w", err)
		}

		purge := tx.Where("date = ?", blocked.Date).Delete(&models.AvailabilityDay{})
		if purge.Error != nil {
			return fmt.Errorf("blocked date service: purge availabilities: %w", purge.Error)
		}
		purged = purge.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if purged > 0 {
		metrics.BlockedDateCascades.Add(float64(purged))
		s.log.Info("blocked date moved",
			zap.String("date", blocked.Date),
			zap.Int64("removed_availabilities", purged))
	}
	return &blocked, nil
}

// Unblock removes a blocked date. Previously purged availabilities are not
// restored.
func (s *BlockedDateService) Unblock(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlockedDate{})
	if result.Error != nil {
		return fmt.Errorf("blocked date service: delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBlockedDateMissing
	}
	return nil
}

// IsBlocked reports whether a date appears on the blocked list.
func (s *BlockedDateService) IsBlocked(ctx context.Context, date string) (bool, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return false, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.BlockedDate{}).
		Where("date = ?", parsed.Format(DateLayout)).Count(&count).Error; err != nil {
		return false, fmt.Errorf("blocked date service: count: %w", err)
	}
	return count > 0, nil
}

// List returns blocked dates within the optional range, ordered by date.
func (s *BlockedDateService) List(ctx context.Context, start, end string) ([]models.BlockedDate, error) {
	if _, _, err := validDateRange(start, end); err != nil {
		return nil, err
	}

	query := applyDateRange(s.db.WithContext(ctx), start, end)

	var blocked []models.BlockedDate
	if err := query.Order("date ASC").Find(&blocked).Error; err != nil {
		return nil, fmt.Errorf("blocked date service: list: %w", err)
	}
	return blocked, nil
}
