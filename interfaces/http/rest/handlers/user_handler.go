package handlers

import (
	"net/http"
	"strconv"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/commands/bus"
	"peersphere-backend/application/queries"
	querybus "peersphere-backend/application/queries/bus"
	"peersphere-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "User ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetUserQuery{UserID: userID})
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// GetUserStats handles GET /users/{userID}/stats
func (h *UserHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "User ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetUserStatsQuery{UserID: userID})
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// FollowUser handles POST /users/{userID}/follow
func (h *UserHandler) FollowUser(w http.ResponseWriter, r *http.Request) {
	followeeID := chi.URLParam(r, "userID")
	if followeeID == "" {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "User ID is required")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.FollowUserCommand{
		FollowerID: userCtx.UserID,
		FolloweeID: followeeID,
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Warn("Follow rejected",
			zap.String("followerID", userCtx.UserID),
			zap.String("followeeID", followeeID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"following": true,
		"user_id":   followeeID,
	})
}

// UnfollowUser handles DELETE /users/{userID}/follow
func (h *UserHandler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	followeeID := chi.URLParam(r, "userID")
	if followeeID == "" {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "User ID is required")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.UnfollowUserCommand{
		FollowerID: userCtx.UserID,
		FolloweeID: followeeID,
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Leaderboard handles GET /leaderboard
func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result, err := h.queryBus.Ask(r.Context(), queries.LeaderboardQuery{Limit: limit})
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}
