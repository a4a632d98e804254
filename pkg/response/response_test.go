package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/easybookevent/artistcal/pkg/errors"
)

func performRequest(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := performRequest(t, func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"value": 42})
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Nil(t, body.Error)
}

func TestErrorEnvelopeFromAppError(t *testing.T) {
	w := performRequest(t, func(c *gin.Context) {
		Error(c, appErrors.ErrForbidden)
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, appErrors.ErrForbidden.Code, body.Error.Code)
}

func TestErrorEnvelopeFromGenericError(t *testing.T) {
	w := performRequest(t, func(c *gin.Context) {
		Error(c, errors.New("unexpected"))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, appErrors.ErrInternalServer.Code, body.Error.Code)
}
