package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/app"
	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/database"
	"github.com/easybookevent/artistcal/internal/database/testutil"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/internal/storage"
)

// testClock pins the calendar so date assertions stay deterministic.
var testClock = func() time.Time {
	return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)
	require.NoError(t, database.EnsureAdmin(db, "admin@example.com", "admin-password"))

	cfg := &app.Config{}
	cfg.Monitoring.Prometheus.Enabled = true
	cfg.Monitoring.Prometheus.Endpoint = "/metrics"

	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "test-secret", Issuer: "artistcal-test"})
	require.NoError(t, err)

	users, err := services.NewUserService(db)
	require.NoError(t, err)
	invites, err := services.NewInviteService(db, nil, services.WithInviteClock(testClock))
	require.NoError(t, err)
	profiles, err := services.NewProfileService(db)
	require.NoError(t, err)
	availability, err := services.NewAvailabilityService(db, services.WithAvailabilityClock(testClock))
	require.NoError(t, err)
	blocked, err := services.NewBlockedDateService(db)
	require.NoError(t, err)
	export, err := services.NewExportService(availability, blocked)
	require.NoError(t, err)

	files, err := storage.NewFileStore(t.TempDir(), "uploads")
	require.NoError(t, err)

	router, err := NewRouter(Deps{
		Config:       cfg,
		JWT:          jwtSvc,
		Users:        users,
		Invites:      invites,
		Profiles:     profiles,
		Availability: availability,
		Blocked:      blocked,
		Export:       export,
		Files:        files,
	})
	require.NoError(t, err)

	return &testEnv{router: router, db: db}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w, env := e.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

// registerArtist walks the invite flow end to end and returns an artist token.
func (e *testEnv) registerArtist(t *testing.T, adminToken, email string) string {
	t.Helper()

	w, env := e.request(t, http.MethodPost, "/api/invitations", adminToken, gin.H{"email": email})
	require.Equal(t, http.StatusCreated, w.Code)

	var invitation struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invitation))

	w, env = e.request(t, http.MethodPost, "/api/auth/register?token="+invitation.Token, "", gin.H{
		"email":    email,
		"password": "artist-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session.Token
}
