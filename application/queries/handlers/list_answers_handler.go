package handlers

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// ListAnswersHandler resolves the answers to a question, accepted answer first
type ListAnswersHandler struct {
	answerRepo   ports.AnswerRepository
	questionRepo ports.QuestionRepository
	logger       *zap.Logger
}

// NewListAnswersHandler creates a new list answers handler
func NewListAnswersHandler(
	answerRepo ports.AnswerRepository,
	questionRepo ports.QuestionRepository,
	logger *zap.Logger,
) *ListAnswersHandler {
	return &ListAnswersHandler{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// Handle executes the list answers query
func (h *ListAnswersHandler) Handle(ctx context.Context, query queries.ListAnswersQuery) (*queries.ListAnswersResult, error) {
	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	questionID, err := valueobjects.NewQuestionIDFromString(query.QuestionID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid question ID")
	}

	// Listing answers on a missing question is a NotFound, not an empty page
	if _, err := h.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	answers, err := h.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	var viewer valueobjects.UserID
	if query.ViewerID != "" {
		viewer, _ = valueobjects.NewUserID(query.ViewerID)
	}

	result := &queries.ListAnswersResult{
		Items: make([]queries.AnswerView, 0, len(answers)),
	}
	for _, answer := range answers {
		result.Items = append(result.Items, queries.NewAnswerView(answer, viewer))
	}

	// Accepted answer floats to the top; the rest keep posting order
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].IsAccepted && !result.Items[j].IsAccepted
	})

	return result, nil
}
