package handlers

import (
	"context"

	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// VoteAnswerHandler casts votes on answers and adjusts the author's
// reputation by the answer point values.
type VoteAnswerHandler struct {
	answerRepo ports.AnswerRepository
	userRepo   ports.UserRepository
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewVoteAnswerHandler creates a new vote answer handler
func NewVoteAnswerHandler(
	answerRepo ports.AnswerRepository,
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *VoteAnswerHandler {
	return &VoteAnswerHandler{
		answerRepo: answerRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle executes the vote answer command
func (h *VoteAnswerHandler) Handle(ctx context.Context, cmd commands.VoteAnswerCommand) (*entities.Answer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	answerID, err := valueobjects.NewAnswerIDFromString(cmd.AnswerID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid answer ID")
	}

	voterID, err := valueobjects.NewUserID(cmd.VoterID)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("voting requires an authenticated user")
	}

	answer, err := h.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	// Run the transition in memory first: duplicate same-direction votes
	// are rejected here before any write happens.
	change, err := answer.Vote(voterID, entities.VoteDirection(cmd.Direction))
	if err != nil {
		return nil, err
	}

	// The store re-checks set membership, so a concurrent duplicate from
	// another process fails the same way.
	if err := h.answerRepo.ApplyVote(ctx, answerID, change); err != nil {
		return nil, err
	}

	delta := change.ReputationDelta(entities.AnswerUpvotePoints, entities.AnswerDownvotePoints)
	if err := h.userRepo.AdjustReputation(ctx, answer.AuthorID(), delta); err != nil {
		// The vote is durable at this point. Surface the inconsistency
		// rather than unwinding the vote write.
		h.logger.Error("reputation adjustment failed after vote",
			zap.String("answerID", cmd.AnswerID),
			zap.String("authorID", answer.AuthorID().String()),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		return nil, pkgerrors.NewReputationAdjustFailedError(err)
	}

	for _, event := range answer.GetUncommittedEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event", zap.Error(err))
		}
	}
	answer.MarkEventsAsCommitted()

	h.logger.Info("Answer vote recorded",
		zap.String("answerID", cmd.AnswerID),
		zap.String("voterID", cmd.VoterID),
		zap.String("direction", cmd.Direction),
		zap.Bool("flipped", change.Flipped),
		zap.Int("reputationDelta", delta),
	)

	return answer, nil
}
