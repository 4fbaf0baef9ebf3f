package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrNotFound.WithMessage("program not found"))
	got := FromError(wrapped)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "program not found", got.Message)
}

func TestFromErrorMapsUnknownToInternal(t *testing.T) {
	cause := errors.New("boom")
	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, FromError(nil))
}

func TestWithMessageDoesNotMutateSentinel(t *testing.T) {
	clone := ErrValidation.WithMessage("invalid grade")
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "invalid grade", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.WithMessage("").Message)
}

func TestWrapKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrUnavailable.Wrap(cause, "bookmarks are temporarily unavailable")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "bookmarks are temporarily unavailable", err.Message)
	assert.Equal(t, "bookmarks are temporarily unavailable: dial tcp: connection refused", err.Error())
	assert.Nil(t, ErrUnavailable.Err)
	assert.Nil(t, err.WithMessage("other").Err)
}

func TestIsMatchesOnCode(t *testing.T) {
	err := fmt.Errorf("submit: %w", ErrUnavailable.WithMessage("submission queue is full"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.False(t, ErrNotFound.Is(errors.New("NOT_FOUND")))
}
