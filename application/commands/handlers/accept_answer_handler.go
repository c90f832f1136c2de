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

// AcceptAnswerHandler marks an answer as the chosen solution for its
// question. Acceptance is exclusive per question: accepting a new answer
// un-accepts the previous one and moves the reputation award with it.
type AcceptAnswerHandler struct {
	answerRepo   ports.AnswerRepository
	questionRepo ports.QuestionRepository
	userRepo     ports.UserRepository
	notifier     ports.Notifier
	publisher    ports.EventPublisher
	logger       *zap.Logger
}

// NewAcceptAnswerHandler creates a new accept answer handler
func NewAcceptAnswerHandler(
	answerRepo ports.AnswerRepository,
	questionRepo ports.QuestionRepository,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AcceptAnswerHandler {
	return &AcceptAnswerHandler{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the accept answer command
func (h *AcceptAnswerHandler) Handle(ctx context.Context, cmd commands.AcceptAnswerCommand) (*entities.Answer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	answerID, err := valueobjects.NewAnswerIDFromString(cmd.AnswerID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid answer ID")
	}

	acceptedBy, err := valueobjects.NewUserID(cmd.AcceptedBy)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("accepting an answer requires an authenticated user")
	}

	answer, err := h.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := h.questionRepo.GetByID(ctx, answer.QuestionID())
	if err != nil {
		return nil, err
	}

	// Authorization and the already-accepted guard live on the entity
	if err := answer.Accept(question.AuthorID(), acceptedBy); err != nil {
		return nil, err
	}

	// If a different answer currently holds the acceptance, release it and
	// claw back its award so the +15 always sits on the accepted answer.
	if previous, err := h.answerRepo.GetAcceptedByQuestionID(ctx, answer.QuestionID()); err == nil {
		if !previous.ID().Equals(answerID) {
			if err := h.answerRepo.ClearAccepted(ctx, previous.ID()); err != nil {
				return nil, err
			}
			if err := h.userRepo.AdjustReputation(ctx, previous.AuthorID(), -entities.AcceptedAnswerPoints); err != nil {
				h.logger.Error("failed to claw back acceptance award",
					zap.String("answerID", previous.ID().String()),
					zap.Error(err),
				)
				return nil, pkgerrors.NewReputationAdjustFailedError(err)
			}
		}
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	// Conditional write: a racing accept of the same answer loses here
	if err := h.answerRepo.MarkAccepted(ctx, answerID); err != nil {
		return nil, err
	}

	if err := h.userRepo.AdjustReputation(ctx, answer.AuthorID(), entities.AcceptedAnswerPoints); err != nil {
		// The accepted flag is durable at this point. Surface the
		// inconsistency rather than unwinding the acceptance.
		h.logger.Error("reputation adjustment failed after acceptance",
			zap.String("answerID", cmd.AnswerID),
			zap.String("authorID", answer.AuthorID().String()),
			zap.Error(err),
		)
		return nil, pkgerrors.NewReputationAdjustFailedError(err)
	}

	// Notification is best-effort; accepting your own answer needs none
	if !answer.AuthorID().Equals(acceptedBy) {
		if err := h.notifier.NotifyAnswerAccepted(ctx, answer.AuthorID(), answer.QuestionID(), answerID); err != nil {
			h.logger.Warn("Failed to send acceptance notification", zap.Error(err))
		}
	}

	for _, event := range answer.GetUncommittedEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event", zap.Error(err))
		}
	}
	answer.MarkEventsAsCommitted()

	h.logger.Info("Answer accepted",
		zap.String("answerID", cmd.AnswerID),
		zap.String("questionID", answer.QuestionID().String()),
		zap.String("acceptedBy", cmd.AcceptedBy),
	)

	return answer, nil
}
