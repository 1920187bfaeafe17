package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP_AppError(t *testing.T) {
	err := New(CodeInvalidCredential, "bad code", http.StatusForbidden)

	httpErr := ToHTTP(err)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, CodeInvalidCredential, httpErr.Code)
	assert.Equal(t, "bad code", httpErr.Message)
}

func TestToHTTP_WrappedAppError(t *testing.T) {
	inner := Wrap(errors.New("dial tcp: refused"), CodeServiceUnavailable, "store down", http.StatusServiceUnavailable)
	err := fmt.Errorf("reconcile: %w", inner)

	httpErr := ToHTTP(err)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	assert.Equal(t, CodeServiceUnavailable, httpErr.Code)
}

func TestToHTTP_UnknownErrorHidesDetails(t *testing.T) {
	httpErr := ToHTTP(errors.New("pq: column does not exist"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, CodeInternalError, httpErr.Code)
	assert.NotContains(t, httpErr.Message, "pq:")
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternalError, "x", 500))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(cause, CodeConflict, "conflict", http.StatusConflict)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "conflict: cause", err.Error())
}
