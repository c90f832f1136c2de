package handlers

import (
	"context"

	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// GetQuestionHandler resolves a single question with its comments and the
// viewer's own vote
type GetQuestionHandler struct {
	questionRepo ports.QuestionRepository
	logger       *zap.Logger
}

// NewGetQuestionHandler creates a new get question handler
func NewGetQuestionHandler(questionRepo ports.QuestionRepository, logger *zap.Logger) *GetQuestionHandler {
	return &GetQuestionHandler{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// Handle executes the get question query
func (h *GetQuestionHandler) Handle(ctx context.Context, query queries.GetQuestionQuery) (*queries.QuestionView, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	questionID, err := valueobjects.NewQuestionIDFromString(query.QuestionID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid question ID")
	}

	question, err := h.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// An unauthenticated viewer simply gets no ViewerVote
	var viewer valueobjects.UserID
	if query.ViewerID != "" {
		viewer, _ = valueobjects.NewUserID(query.ViewerID)
	}

	view := queries.NewQuestionView(question, viewer)
	return &view, nil
}
