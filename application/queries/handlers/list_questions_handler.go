package handlers

import (
	"context"

	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	pkgerrors "peersphere-backend/pkg/errors"
)

// ListQuestionsHandler resolves pages of questions, newest first
type ListQuestionsHandler struct {
	questionRepo ports.QuestionRepository
	logger       *zap.Logger
}

// NewListQuestionsHandler creates a new list questions handler
func NewListQuestionsHandler(questionRepo ports.QuestionRepository, logger *zap.Logger) *ListQuestionsHandler {
	return &ListQuestionsHandler{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// Handle executes the list questions query
func (h *ListQuestionsHandler) Handle(ctx context.Context, query queries.ListQuestionsQuery) (*queries.ListQuestionsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	criteria := ports.ListCriteria{
		Tag:       query.Tag,
		Limit:     query.EffectiveLimit(),
		NextToken: query.NextToken,
	}

	items, err := h.questionRepo.List(ctx, criteria)
	if err != nil {
		return nil, err
	}

	result := &queries.ListQuestionsResult{
		Items: make([]queries.QuestionSummary, 0, len(items)),
	}
	for _, question := range items {
		result.Items = append(result.Items, queries.NewQuestionSummary(question))
	}

	// A full page signals more data; the token is the last item's ID
	if len(items) == criteria.Limit {
		result.NextToken = items[len(items)-1].ID().String()
	}

	return result, nil
}
