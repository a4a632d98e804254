package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ExportService renders the admin calendar view as CSV. Availability rows and
// blocked dates are merged into a single chronological sheet.
type ExportService struct {
	availability *AvailabilityService
	blocked      *BlockedDateService
}

// NewExportService constructs an ExportService.
func NewExportService(availability *AvailabilityService, blocked *BlockedDateService) (*ExportService, error) {
	if availability == nil || blocked == nil {
		return nil, errors.New("export service: availability and blocked services are required")
	}
	return &ExportService{availability: availability, blocked: blocked}, nil
}

var csvHeader = []string{"date", "kind", "name", "email", "rate", "note"}

// ExportCSV returns the calendar as CSV text. Both range bounds are optional,
// and artistID narrows the availability rows to one artist. Blocked dates are
// omitted when filtering by artist since they are not artist-specific.
func (s *ExportService) ExportCSV(ctx context.Context, start, end, artistID string) (string, error) {
	days, err := s.availability.ListAll(ctx, start, end, artistID)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{
			day.Date,
			"availability",
			day.ArtistName,
			day.ArtistEmail,
			day.NightlyRate,
			day.Note,
		})
	}

	if artistID == "" {
		blocked, err := s.blocked.List(ctx, start, end)
		if err != nil {
			return "", err
		}
		for _, b := range blocked {
			rows = append(rows, []string{b.Date, "blocked", "", "", "", b.Note})
		}
	}

	// Chronological order with blocked rows after availabilities on ties.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export service: write header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("export service: write rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("export service: flush: %w", err)
	}
	return buf.String(), nil
}
