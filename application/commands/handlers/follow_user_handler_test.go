package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestFollowUserHandler_HandleFollow_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	followee := fixtures.NewUserBuilder().WithID("user-2").MustBuild()
	follower, _ := valueobjects.NewUserID("user-1")

	cmd := commands.FollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-2",
	}

	mockUserRepo.On("GetByID", ctx, followee.ID()).Return(followee, nil)
	mockUserRepo.On("Follow", ctx, follower, followee.ID()).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewFollowUserHandler(mockUserRepo, mockPublisher, logger)

	// Act
	err := handler.HandleFollow(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestFollowUserHandler_HandleFollow_SelfFollowRejected(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.MockUserRepository)
	handler := NewFollowUserHandler(mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	cmd := commands.FollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-1",
	}

	// Act
	err := handler.HandleFollow(context.Background(), cmd)

	// Assert
	assert.True(t, pkgerrors.IsValidation(err))
	mockUserRepo.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUserHandler_HandleFollow_FolloweeMissing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	followee, _ := valueobjects.NewUserID("user-2")
	cmd := commands.FollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-2",
	}

	mockUserRepo.On("GetByID", ctx, followee).Return(nil, pkgerrors.NewNotFoundError("user"))

	handler := NewFollowUserHandler(mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	// Act
	err := handler.HandleFollow(ctx, cmd)

	// Assert
	assert.True(t, pkgerrors.IsNotFound(err))
	mockUserRepo.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUserHandler_HandleFollow_DuplicateFromStore(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	followee := fixtures.NewUserBuilder().WithID("user-2").MustBuild()
	follower, _ := valueobjects.NewUserID("user-1")
	cmd := commands.FollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-2",
	}

	mockUserRepo.On("GetByID", ctx, followee.ID()).Return(followee, nil)
	mockUserRepo.On("Follow", ctx, follower, followee.ID()).Return(pkgerrors.NewAlreadyFollowingError())

	handler := NewFollowUserHandler(mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	// Act
	err := handler.HandleFollow(ctx, cmd)

	// Assert
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeAlreadyFollowing))
}

func TestFollowUserHandler_HandleUnfollow_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	follower, _ := valueobjects.NewUserID("user-1")
	followee, _ := valueobjects.NewUserID("user-2")
	cmd := commands.UnfollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-2",
	}

	mockUserRepo.On("Unfollow", ctx, follower, followee).Return(nil)

	handler := NewFollowUserHandler(mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	// Act
	err := handler.HandleUnfollow(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestFollowUserHandler_HandleUnfollow_MissingRelationship(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUserRepo := new(mocks.MockUserRepository)

	follower, _ := valueobjects.NewUserID("user-1")
	followee, _ := valueobjects.NewUserID("user-2")
	cmd := commands.UnfollowUserCommand{
		FollowerID: "user-1",
		FolloweeID: "user-2",
	}

	mockUserRepo.On("Unfollow", ctx, follower, followee).Return(pkgerrors.NewNotFoundError("follow relationship"))

	handler := NewFollowUserHandler(mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	// Act
	err := handler.HandleUnfollow(ctx, cmd)

	// Assert
	assert.True(t, pkgerrors.IsNotFound(err))
}
