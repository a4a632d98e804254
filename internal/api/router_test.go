package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterPublicAndProtectedRoutes(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.request(t, http.MethodGet, "/api/availability-days", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.request(t, http.MethodGet, "/api/artists", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterRoleEnforcement(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "admin-password")
	artistToken := env.registerArtist(t, adminToken, "artist@example.com")

	// Artists cannot reach admin surfaces.
	for _, path := range []string{"/api/artists", "/api/invitations", "/api/export/csv"} {
		w, _ := env.request(t, http.MethodGet, path, artistToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)
	}
	w, _ := env.request(t, http.MethodPost, "/api/blocked-dates", artistToken, map[string]string{"date": "2026-07-14"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admins cannot toggle availability or edit profiles.
	w, _ = env.request(t, http.MethodPost, "/api/availability-days/toggle", adminToken, map[string]string{"date": "2026-07-01"})
	require.Equal(t, http.StatusForbidden, w.Code)
	w, _ = env.request(t, http.MethodGet, "/api/profile", adminToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "artistcal_api_latency_seconds"))
}

func TestRouterUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.request(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
