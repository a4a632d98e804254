package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easybookevent/artistcal/internal/models"
)

func TestCalendarEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "admin-password")
	artistToken := env.registerArtist(t, adminToken, "dj.nova@example.com")

	// The artist fills in a profile.
	w, _ := env.request(t, http.MethodPost, "/api/profile", artistToken, map[string]string{
		"stage_name":   "DJ Nova",
		"nightly_rate": "1200",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Toggle two dates on, one back off.
	for _, date := range []string{"2026-07-01", "2026-07-02"} {
		w, env2 := env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{
			"date": date,
			"note": "festival season",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			Action    string `json:"action"`
			Available bool   `json:"available"`
		}
		require.NoError(t, json.Unmarshal(env2.Data, &result))
		require.Equal(t, "added", result.Action)
		require.True(t, result.Available)
	}

	w, env2 := env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{"date": "2026-07-02"})
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &result))
	require.Equal(t, "removed", result.Action)

	// Past dates are rejected with the validation taxonomy.
	w, env2 = env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{"date": "2026-05-31"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "DATE_IN_PAST", env2.Error.Code)

	// The artist sees one remaining day.
	w, env2 = env.request(t, http.MethodGet, "/api/availability-days", artistToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var own struct {
		Availabilities []models.AvailabilityDay `json:"availabilities"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &own))
	require.Len(t, own.Availabilities, 1)
	require.Equal(t, "2026-07-01", own.Availabilities[0].Date)

	// The admin view carries artist identity.
	w, env2 = env.request(t, http.MethodGet, "/api/availability-days", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all struct {
		Availabilities []struct {
			Date       string `json:"date"`
			ArtistName string `json:"artist_name"`
		} `json:"availabilities"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &all))
	require.Len(t, all.Availabilities, 1)
	require.Equal(t, "DJ Nova", all.Availabilities[0].ArtistName)

	// Per-date admin lookup.
	w, env2 = env.request(t, http.MethodGet, "/api/availability-days/2026-07-01", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var onDate struct {
		Artists []json.RawMessage `json:"artists"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &onDate))
	require.Len(t, onDate.Artists, 1)
}

func TestBlockedDateFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "admin-password")
	artistToken := env.registerArtist(t, adminToken, "dj@example.com")

	w, _ := env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{"date": "2026-07-14"})
	require.Equal(t, http.StatusOK, w.Code)

	// Blocking removes the artist's record and reports the cascade.
	w, env2 := env.request(t, http.MethodPost, "/api/blocked-dates", adminToken, map[string]string{
		"date": "2026-07-14",
		"note": "venue closed",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var blockResult struct {
		Removed int64 `json:"removed_availabilities"`
		Blocked struct {
			ID string `json:"id"`
		} `json:"blocked"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &blockResult))
	require.EqualValues(t, 1, blockResult.Removed)

	// Toggling onto a blocked date fails.
	w, env2 = env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{"date": "2026-07-14"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "DATE_BLOCKED", env2.Error.Code)

	// Artists can read the blocked list but not change it.
	w, env2 = env.request(t, http.MethodGet, "/api/blocked-dates", artistToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		BlockedDates []models.BlockedDate `json:"blocked_dates"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &list))
	require.Len(t, list.BlockedDates, 1)

	// Note update and unblock.
	w, _ = env.request(t, http.MethodPut, "/api/blocked-dates/"+blockResult.Blocked.ID, adminToken, map[string]string{"note": "reopened"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.request(t, http.MethodDelete, "/api/blocked-dates/"+blockResult.Blocked.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Unblocking does not restore the purged availability.
	w, env2 = env.request(t, http.MethodGet, "/api/availability-days", artistToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var own struct {
		Availabilities []models.AvailabilityDay `json:"availabilities"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &own))
	require.Empty(t, own.Availabilities)
}

func TestExportAndRosterFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "admin-password")
	artistToken := env.registerArtist(t, adminToken, "dj@example.com")

	w, _ := env.request(t, http.MethodPost, "/api/profile", artistToken, map[string]string{"stage_name": "DJ Nova"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.request(t, http.MethodPost, "/api/availability-days/toggle", artistToken, map[string]string{"date": "2026-07-01"})
	require.Equal(t, http.StatusOK, w.Code)

	// Roster with availability counts.
	w, env2 := env.request(t, http.MethodGet, "/api/artists", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roster struct {
		Artists []struct {
			ID                string `json:"id"`
			StageName         string `json:"stage_name"`
			AvailabilityCount int64  `json:"availability_count"`
		} `json:"artists"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &roster))
	require.Len(t, roster.Artists, 1)
	require.Equal(t, "DJ Nova", roster.Artists[0].StageName)
	require.EqualValues(t, 1, roster.Artists[0].AvailabilityCount)

	// Category assignment.
	w, _ = env.request(t, http.MethodPatch, "/api/artists/"+roster.Artists[0].ID+"/category", adminToken, map[string]string{"category": "DJ"})
	require.Equal(t, http.StatusOK, w.Code)
	w, env2 = env.request(t, http.MethodPatch, "/api/artists/"+roster.Artists[0].ID+"/category", adminToken, map[string]string{"category": "Band"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_CATEGORY", env2.Error.Code)

	// CSV export.
	w, env2 = env.request(t, http.MethodGet, "/api/export/csv", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var export struct {
		CSVContent string `json:"csv_content"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &export))
	rows, err := csv.NewReader(strings.NewReader(export.CSVContent)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "DJ Nova", rows[1][2])

	// Deleting the artist cascades.
	w, _ = env.request(t, http.MethodDelete, "/api/artists/"+roster.Artists[0].ID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env2 = env.request(t, http.MethodGet, "/api/export/csv", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env2.Data, &export))
	rows, err = csv.NewReader(strings.NewReader(export.CSVContent)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestInvitationLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "admin-password")

	w, env2 := env.request(t, http.MethodPost, "/api/invitations", adminToken, map[string]string{"email": "pending@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	var invitation struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &invitation))

	// Public verification reports the invited email.
	w, env2 = env.request(t, http.MethodGet, "/api/invitations/verify/"+invitation.Token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var verify struct {
		Email string `json:"email"`
		Valid bool   `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &verify))
	require.True(t, verify.Valid)
	require.Equal(t, "pending@example.com", verify.Email)

	// Registration without the ?token= query parameter is rejected.
	w, env2 = env.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "pending@example.com",
		"password": "artist-password",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVITATION_INVALID", env2.Error.Code)

	// Duplicate invitation for the same email is rejected.
	w, env2 = env.request(t, http.MethodPost, "/api/invitations", adminToken, map[string]string{"email": "pending@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVITATION_PENDING", env2.Error.Code)

	// Revoking kills the token.
	w, _ = env.request(t, http.MethodDelete, "/api/invitations/"+invitation.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.request(t, http.MethodGet, "/api/invitations/verify/"+invitation.Token, "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
