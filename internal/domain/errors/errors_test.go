package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrUserAlreadyExists.WrapMessage("email already registered")

	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	var appErr AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.ErrorCode())
}

func TestBaseError_WithDetails(t *testing.T) {
	err := ErrValidationFailed.WithDetails("password must be at least 6 characters")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "password must be at least 6 characters", err.Details())
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to list orders")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Contains(t, err.Error(), "connection reset")
}
