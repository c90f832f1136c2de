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

// CreateQuestionHandler handles question creation
type CreateQuestionHandler struct {
	questionRepo ports.QuestionRepository
	userRepo     ports.UserRepository
	publisher    ports.EventPublisher
	logger       *zap.Logger
}

// NewCreateQuestionHandler creates a new create question handler
func NewCreateQuestionHandler(
	questionRepo ports.QuestionRepository,
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateQuestionHandler {
	return &CreateQuestionHandler{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the create question command
func (h *CreateQuestionHandler) Handle(ctx context.Context, cmd commands.CreateQuestionCommand) (*entities.Question, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	authorID, err := valueobjects.NewUserID(cmd.AuthorID)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("posting a question requires an authenticated user")
	}

	question, err := entities.NewQuestion(authorID, cmd.Title, cmd.Content, cmd.Tags)
	if err != nil {
		return nil, err
	}

	if err := h.questionRepo.Save(ctx, question); err != nil {
		return nil, err
	}

	// Counter update is best-effort; the question itself is already saved
	if err := h.userRepo.IncrementQuestionsAsked(ctx, authorID); err != nil {
		h.logger.Warn("Failed to bump questions counter",
			zap.String("authorID", cmd.AuthorID),
			zap.Error(err),
		)
	}

	for _, event := range question.GetUncommittedEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish event", zap.Error(err))
		}
	}
	question.MarkEventsAsCommitted()

	h.logger.Info("Question created",
		zap.String("questionID", question.ID().String()),
		zap.String("authorID", cmd.AuthorID),
	)

	return question, nil
}
