package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageFormatting(t *testing.T) {
	base := New("TEST_CODE", "something failed", http.StatusBadRequest)
	require.Equal(t, "something failed", base.Error())

	inner := errors.New("disk exploded")
	wrapped := base.WithInternal(inner)
	require.Equal(t, "something failed: disk exploded", wrapped.Error())
	require.ErrorIs(t, wrapped, inner)

	// WithInternal must not mutate the original error.
	require.Nil(t, base.Internal)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	appErr := NewBadRequest("bad input")
	require.Same(t, appErr, FromError(appErr))

	converted := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, converted.Code)
	require.Equal(t, http.StatusInternalServerError, converted.StatusCode)
}

func TestWrapPreservesInternal(t *testing.T) {
	inner := errors.New("db down")
	wrapped := Wrap(inner, "storing availability failed")

	require.Equal(t, http.StatusInternalServerError, wrapped.StatusCode)
	require.ErrorIs(t, wrapped, inner)
}
