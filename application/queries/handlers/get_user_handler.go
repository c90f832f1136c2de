package handlers

import (
	"context"

	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// GetUserHandler resolves user profiles and activity stats
type GetUserHandler struct {
	userRepo ports.UserRepository
	logger   *zap.Logger
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(userRepo ports.UserRepository, logger *zap.Logger) *GetUserHandler {
	return &GetUserHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, query queries.GetUserQuery) (*queries.UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	userID, err := valueobjects.NewUserID(query.UserID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid user ID")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := queries.NewUserView(user)
	return &view, nil
}

// HandleStats executes the get user stats query
func (h *GetUserHandler) HandleStats(ctx context.Context, query queries.GetUserStatsQuery) (*queries.UserStatsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	userID, err := valueobjects.NewUserID(query.UserID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid user ID")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := queries.NewUserStatsResult(user)
	return &result, nil
}
