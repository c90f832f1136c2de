package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlreadyVotedError_SurfacesAsBadRequest(t *testing.T) {
	err := NewAlreadyVotedError("question")

	assert.True(t, IsConflict(err))
	assert.True(t, HasCode(err, CodeAlreadyVoted))
	// Historical API behavior: duplicate votes are 400, not 409
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Message, "question")
}

func TestAlreadyAcceptedError(t *testing.T) {
	err := NewAlreadyAcceptedError()

	assert.True(t, HasCode(err, CodeAlreadyAccepted))
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
}

func TestReputationAdjustFailedError_WrapsCause(t *testing.T) {
	cause := errors.New("throughput exceeded")
	err := NewReputationAdjustFailedError(cause)

	assert.True(t, HasCode(err, CodeReputationAdjustFailed))
	assert.True(t, IsInternal(err))
	assert.ErrorIs(t, err, cause)
}

func TestGetAppError_UnwrapsChain(t *testing.T) {
	inner := NewNotFoundError("answer")
	wrapped := fmt.Errorf("loading answer: %w", inner)

	appErr := GetAppError(wrapped)

	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetAppError_NonAppError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, HasCode(nil, CodeAlreadyVoted))
}

func TestWrap_AddsContext(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	inner := NewValidationError("title too short")
	wrapped := Wrap(inner, "creating question")
	assert.True(t, IsValidation(wrapped))
	assert.Contains(t, wrapped.Error(), "creating question")

	plain := Wrap(errors.New("disk full"), "saving")
	assert.True(t, IsInternal(plain))
}
