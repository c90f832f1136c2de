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

// VoteQuestionHandler casts votes on questions and adjusts the author's
// reputation by the question point values.
type VoteQuestionHandler struct {
	questionRepo ports.QuestionRepository
	userRepo     ports.UserRepository
	publisher    ports.EventPublisher
	logger       *zap.Logger
}

// NewVoteQuestionHandler creates a new vote question handler
func NewVoteQuestionHandler(
	questionRepo ports.QuestionRepository,
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *VoteQuestionHandler {
	return &VoteQuestionHandler{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the vote question command
func (h *VoteQuestionHandler) Handle(ctx context.Context, cmd commands.VoteQuestionCommand) (*entities.Question, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	questionID, err := valueobjects.NewQuestionIDFromString(cmd.QuestionID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid question ID")
	}

	voterID, err := valueobjects.NewUserID(cmd.VoterID)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("voting requires an authenticated user")
	}

	question, err := h.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// Run the transition in memory first: duplicate same-direction votes
	// are rejected here before any write happens.
	change, err := question.Vote(voterID, entities.VoteDirection(cmd.Direction))
	if err != nil {
		return nil, err
	}

	// The store re-checks set membership, so a concurrent duplicate from
	// another process fails the same way.
	if err := h.questionRepo.ApplyVote(ctx, questionID, change); err != nil {
		return nil, err
	}

	delta := change.ReputationDelta(entities.QuestionUpvotePoints, entities.QuestionDownvotePoints)
	if err := h.userRepo.AdjustReputation(ctx, question.AuthorID(), delta); err != nil {
		// The vote is durable at this point. Surface the inconsistency
		// rather than unwinding the vote write.
		h.logger.Error("reputation adjustment failed after vote",
			zap.String("questionID", cmd.QuestionID),
			zap.String("authorID", question.AuthorID().String()),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		return nil, pkgerrors.NewReputationAdjustFailedError(err)
	}

	for _, event := range question.GetUncommittedEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event", zap.Error(err))
		}
	}
	question.MarkEventsAsCommitted()

	h.logger.Info("Question vote recorded",
		zap.String("questionID", cmd.QuestionID),
		zap.String("voterID", cmd.VoterID),
		zap.String("direction", cmd.Direction),
		zap.Bool("flipped", change.Flipped),
		zap.Int("reputationDelta", delta),
	)

	return question, nil
}
