package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"peersphere-backend/application/queries"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestGetUserHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)
	logger := zap.NewNop()

	user := fixtures.NewUserBuilder().
		WithID("user-1").
		WithUsername("alice").
		WithReputation(27).
		MustBuild()

	mockUserRepo.On("GetByID", ctx, user.ID()).Return(user, nil)

	handler := NewGetUserHandler(mockUserRepo, logger)

	// Act
	view, err := handler.Handle(ctx, queries.GetUserQuery{UserID: "user-1"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, 27, view.Reputation)
}

func TestGetUserHandler_Handle_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	user := fixtures.NewUserBuilder().WithID("user-1").MustBuild()
	mockUserRepo.On("GetByID", ctx, user.ID()).Return(nil, pkgerrors.NewNotFoundError("user"))

	handler := NewGetUserHandler(mockUserRepo, zap.NewNop())

	// Act
	view, err := handler.Handle(ctx, queries.GetUserQuery{UserID: "user-1"})

	// Assert
	assert.Nil(t, view)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetUserHandler_HandleStats(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	user := fixtures.NewUserBuilder().WithID("user-1").WithReputation(50).MustBuild()
	user.RecordQuestionAsked()
	user.RecordAnswerGiven()
	user.RecordAnswerGiven()

	mockUserRepo.On("GetByID", ctx, user.ID()).Return(user, nil)

	handler := NewGetUserHandler(mockUserRepo, zap.NewNop())

	// Act
	stats, err := handler.HandleStats(ctx, queries.GetUserStatsQuery{UserID: "user-1"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 50, stats.Reputation)
	assert.Equal(t, 1, stats.QuestionsAsked)
	assert.Equal(t, 2, stats.AnswersGiven)
}

func TestGetUserHandler_Handle_EmptyIDRejected(t *testing.T) {
	// Arrange
	handler := NewGetUserHandler(new(mocks.MockUserRepository), zap.NewNop())

	// Act
	view, err := handler.Handle(context.Background(), queries.GetUserQuery{})

	// Assert
	assert.Nil(t, view)
	assert.True(t, pkgerrors.IsValidation(err))
}
