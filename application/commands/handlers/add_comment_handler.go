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

// AddCommentHandler appends comments to questions and answers
type AddCommentHandler struct {
	questionRepo ports.QuestionRepository
	answerRepo   ports.AnswerRepository
	logger       *zap.Logger
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(
	questionRepo ports.QuestionRepository,
	answerRepo ports.AnswerRepository,
	logger *zap.Logger,
) *AddCommentHandler {
	return &AddCommentHandler{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		logger:       logger,
	}
}

// Handle executes the add comment command
func (h *AddCommentHandler) Handle(ctx context.Context, cmd commands.AddCommentCommand) (entities.Comment, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Comment{}, pkgerrors.NewValidationError(err.Error())
	}

	authorID, err := valueobjects.NewUserID(cmd.AuthorID)
	if err != nil {
		return entities.Comment{}, pkgerrors.NewUnauthorizedError("commenting requires an authenticated user")
	}

	var comment entities.Comment

	switch cmd.Target {
	case commands.CommentOnQuestion:
		questionID, err := valueobjects.NewQuestionIDFromString(cmd.TargetID)
		if err != nil {
			return entities.Comment{}, pkgerrors.NewValidationError("invalid question ID")
		}

		question, err := h.questionRepo.GetByID(ctx, questionID)
		if err != nil {
			return entities.Comment{}, err
		}

		comment, err = question.AddComment(authorID, cmd.Content)
		if err != nil {
			return entities.Comment{}, err
		}

		if err := h.questionRepo.AppendComment(ctx, questionID, comment); err != nil {
			return entities.Comment{}, err
		}

	case commands.CommentOnAnswer:
		answerID, err := valueobjects.NewAnswerIDFromString(cmd.TargetID)
		if err != nil {
			return entities.Comment{}, pkgerrors.NewValidationError("invalid answer ID")
		}

		answer, err := h.answerRepo.GetByID(ctx, answerID)
		if err != nil {
			return entities.Comment{}, err
		}

		comment, err = answer.AddComment(authorID, cmd.Content)
		if err != nil {
			return entities.Comment{}, err
		}

		if err := h.answerRepo.AppendComment(ctx, answerID, comment); err != nil {
			return entities.Comment{}, err
		}
	}

	h.logger.Info("Comment added",
		zap.String("target", string(cmd.Target)),
		zap.String("targetID", cmd.TargetID),
		zap.String("authorID", cmd.AuthorID),
	)

	return comment, nil
}
