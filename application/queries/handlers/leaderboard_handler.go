package handlers

import (
	"context"

	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	pkgerrors "peersphere-backend/pkg/errors"
)

// LeaderboardHandler resolves the top users by reputation
type LeaderboardHandler struct {
	userRepo ports.UserRepository
	cache    ports.Cache
	logger   *zap.Logger
}

// leaderboardCacheTTL is how long a computed leaderboard stays fresh, in seconds
const leaderboardCacheTTL = 60

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(userRepo ports.UserRepository, cache ports.Cache, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Handle executes the leaderboard query
func (h *LeaderboardHandler) Handle(ctx context.Context, query queries.LeaderboardQuery) (*queries.LeaderboardResult, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	cacheKey := "leaderboard"
	if h.cache != nil && query.Limit == 0 {
		if cached, ok := h.cache.Get(ctx, cacheKey); ok {
			if result, ok := cached.(*queries.LeaderboardResult); ok {
				return result, nil
			}
		}
	}

	users, err := h.userRepo.Leaderboard(ctx, query.EffectiveLimit())
	if err != nil {
		return nil, err
	}

	result := queries.NewLeaderboardResult(users)

	if h.cache != nil && query.Limit == 0 {
		if err := h.cache.Set(ctx, cacheKey, &result, leaderboardCacheTTL); err != nil {
			h.logger.Warn("Failed to cache leaderboard", zap.Error(err))
		}
	}

	return &result, nil
}
