package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation.Status())
	assert.Equal(t, http.StatusUnauthorized, Unauthenticated.Status())
	assert.Equal(t, http.StatusForbidden, Forbidden.Status())
	assert.Equal(t, http.StatusNotFound, NotFound.Status())
	assert.Equal(t, http.StatusConflict, Conflict.Status())
	assert.Equal(t, http.StatusTooManyRequests, RateLimited.Status())
	assert.Equal(t, http.StatusInternalServerError, Internal.Status())
}

func TestIsKindThroughWrapping(t *testing.T) {
	cause := New(NotFound, "product not found")
	wrapped := fmt.Errorf("loading cart: %w", cause)

	assert.True(t, IsKind(wrapped, NotFound))
	assert.False(t, IsKind(wrapped, Conflict))
	assert.False(t, IsKind(errors.New("plain"), NotFound))
}

func TestFromUnknownErrorIsInternal(t *testing.T) {
	cause := errors.New("driver: bad connection")
	e := From(cause)

	assert.Equal(t, Internal, e.Kind)
	assert.Equal(t, "internal server error", e.Message)
	assert.ErrorIs(t, e, cause)
}

func TestWrapKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("secret detail")
	e := Wrap(Unauthenticated, "invalid or expired token", cause)

	assert.Equal(t, "invalid or expired token", e.Message)
	assert.Contains(t, e.Error(), "secret detail")
	assert.ErrorIs(t, e, cause)
}
