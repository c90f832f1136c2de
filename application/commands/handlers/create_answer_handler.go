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

// CreateAnswerHandler handles answer creation and notifies the question author
type CreateAnswerHandler struct {
	answerRepo   ports.AnswerRepository
	questionRepo ports.QuestionRepository
	userRepo     ports.UserRepository
	notifier     ports.Notifier
	publisher    ports.EventPublisher
	logger       *zap.Logger
}

// NewCreateAnswerHandler creates a new create answer handler
func NewCreateAnswerHandler(
	answerRepo ports.AnswerRepository,
	questionRepo ports.QuestionRepository,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateAnswerHandler {
	return &CreateAnswerHandler{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the create answer command
func (h *CreateAnswerHandler) Handle(ctx context.Context, cmd commands.CreateAnswerCommand) (*entities.Answer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	questionID, err := valueobjects.NewQuestionIDFromString(cmd.QuestionID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid question ID")
	}

	authorID, err := valueobjects.NewUserID(cmd.AuthorID)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("posting an answer requires an authenticated user")
	}

	// The question must exist; a NotFound here propagates as-is
	question, err := h.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer, err := entities.NewAnswer(questionID, authorID, cmd.Content)
	if err != nil {
		return nil, err
	}

	if err := h.answerRepo.Save(ctx, answer); err != nil {
		return nil, err
	}

	// Counter update is best-effort; the answer itself is already saved
	if err := h.userRepo.IncrementAnswersGiven(ctx, authorID); err != nil {
		h.logger.Warn("Failed to bump answers counter",
			zap.String("authorID", cmd.AuthorID),
			zap.Error(err),
		)
	}

	// Don't notify authors answering their own question
	if !question.AuthorID().Equals(authorID) {
		if err := h.notifier.NotifyNewAnswer(ctx, question.AuthorID(), questionID, answer.ID()); err != nil {
			h.logger.Warn("Failed to send new-answer notification", zap.Error(err))
		}
	}

	for _, event := range answer.GetUncommittedEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event", zap.Error(err))
		}
	}
	answer.MarkEventsAsCommitted()

	h.logger.Info("Answer created",
		zap.String("answerID", answer.ID().String()),
		zap.String("questionID", cmd.QuestionID),
		zap.String("authorID", cmd.AuthorID),
	)

	return answer, nil
}
