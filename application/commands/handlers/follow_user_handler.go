package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
	pkgerrors "peersphere-backend/pkg/errors"
)

// FollowUserHandler manages follow relationships between users
type FollowUserHandler struct {
	userRepo  ports.UserRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewFollowUserHandler creates a new follow user handler
func NewFollowUserHandler(
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *FollowUserHandler {
	return &FollowUserHandler{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleFollow executes the follow user command
func (h *FollowUserHandler) HandleFollow(ctx context.Context, cmd commands.FollowUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	followerID, err := valueobjects.NewUserID(cmd.FollowerID)
	if err != nil {
		return pkgerrors.NewUnauthorizedError("following requires an authenticated user")
	}

	followeeID, err := valueobjects.NewUserID(cmd.FolloweeID)
	if err != nil {
		return pkgerrors.NewValidationError("invalid followee ID")
	}

	// The followee must exist before the relationship is written
	if _, err := h.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	// The store rejects duplicate follows atomically
	if err := h.userRepo.Follow(ctx, followerID, followeeID); err != nil {
		return err
	}

	event := events.NewUserFollowed(followerID, followeeID, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish event", zap.Error(err))
	}

	h.logger.Info("User followed",
		zap.String("followerID", cmd.FollowerID),
		zap.String("followeeID", cmd.FolloweeID),
	)

	return nil
}

// HandleUnfollow executes the unfollow user command
func (h *FollowUserHandler) HandleUnfollow(ctx context.Context, cmd commands.UnfollowUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	followerID, err := valueobjects.NewUserID(cmd.FollowerID)
	if err != nil {
		return pkgerrors.NewUnauthorizedError("unfollowing requires an authenticated user")
	}

	followeeID, err := valueobjects.NewUserID(cmd.FolloweeID)
	if err != nil {
		return pkgerrors.NewValidationError("invalid followee ID")
	}

	if err := h.userRepo.Unfollow(ctx, followerID, followeeID); err != nil {
		return err
	}

	h.logger.Info("User unfollowed",
		zap.String("followerID", cmd.FollowerID),
		zap.String("followeeID", cmd.FolloweeID),
	)

	return nil
}
