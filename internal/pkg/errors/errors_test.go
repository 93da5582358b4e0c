package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ErrStorage.WithCause(cause)

	assert.True(t, Is(err, ErrStorage))
	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, ErrStorage.Unwrap(), "sentinel must stay untouched")
}

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	err := ErrValidation.WithDetails(map[string]interface{}{"lat": "required"})

	assert.Equal(t, "required", err.Details["lat"])
	assert.Empty(t, ErrValidation.Details)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("insert complaint: %w", ErrStorage.WithCause(stderrors.New("readonly")))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "STORAGE_ERROR", appErr.Code)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestIs_DifferentCodes(t *testing.T) {
	assert.False(t, Is(ErrStorage, ErrValidation))
}
