package services

import (
	"net/http"
	"time"

	apperrors "github.com/easybookevent/artistcal/pkg/errors"
)

// DateLayout is the ISO calendar-date format used across the API and storage.
const DateLayout = "2006-01-02"

var errInvalidDate = apperrors.New("INVALID_DATE", "Date must be formatted as YYYY-MM-DD", http.StatusBadRequest)

// parseDate validates and normalises an ISO calendar date string.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return parsed, nil
}

// today truncates the clock reading to a UTC calendar date.
func today(now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// validDateRange parses an optional [start, end] pair, rejecting inverted ranges.
func validDateRange(start, end string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if start != "" {
		if from, err = parseDate(start); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end != "" {
		if to, err = parseDate(end); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if start != "" && end != "" && to.Before(from) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequest("end date must not precede start date")
	}
	return from, to, nil
}
