package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"peersphere-backend/application/queries"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestListAnswersHandler_Handle_AcceptedAnswerFirst(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	logger := zap.NewNop()

	question := fixtures.NewQuestionBuilder().MustBuild()
	first := fixtures.NewAnswerBuilder().WithQuestionID(question.ID()).WithAuthorID("bob").MustBuild()
	second := fixtures.NewAnswerBuilder().WithQuestionID(question.ID()).WithAuthorID("carol").MustBuild()
	accepted := fixtures.NewAnswerBuilder().WithQuestionID(question.ID()).WithAuthorID("dave").Accepted().MustBuild()

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockAnswerRepo.On("GetByQuestionID", ctx, question.ID()).
		Return([]*entities.Answer{first, second, accepted}, nil)

	handler := NewListAnswersHandler(mockAnswerRepo, mockQuestionRepo, logger)

	// Act
	result, err := handler.Handle(ctx, queries.ListAnswersQuery{QuestionID: question.ID().String()})

	// Assert: accepted answer floats to the top, the rest keep order
	assert.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, accepted.ID().String(), result.Items[0].ID)
	assert.True(t, result.Items[0].IsAccepted)
	assert.Equal(t, first.ID().String(), result.Items[1].ID)
	assert.Equal(t, second.ID().String(), result.Items[2].ID)
}

func TestListAnswersHandler_Handle_ViewerVoteAttached(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)

	question := fixtures.NewQuestionBuilder().MustBuild()
	answer := fixtures.NewAnswerBuilder().WithQuestionID(question.ID()).MustBuild()
	viewer, _ := valueobjects.NewUserID("viewer-1")
	_, err := answer.Vote(viewer, entities.VoteDown)
	assert.NoError(t, err)

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockAnswerRepo.On("GetByQuestionID", ctx, question.ID()).Return([]*entities.Answer{answer}, nil)

	handler := NewListAnswersHandler(mockAnswerRepo, mockQuestionRepo, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, queries.ListAnswersQuery{
		QuestionID: question.ID().String(),
		ViewerID:   "viewer-1",
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "down", result.Items[0].ViewerVote)
}

func TestListAnswersHandler_Handle_MissingQuestionIsNotFound(t *testing.T) {
	// Arrange: a missing question is a 404, not an empty page
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)

	questionID := valueobjects.NewQuestionID()
	mockQuestionRepo.On("GetByID", ctx, questionID).Return(nil, pkgerrors.NewNotFoundError("question"))

	handler := NewListAnswersHandler(mockAnswerRepo, mockQuestionRepo, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, queries.ListAnswersQuery{QuestionID: questionID.String()})

	// Assert
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestListAnswersHandler_Handle_EmptyList(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)

	question := fixtures.NewQuestionBuilder().MustBuild()
	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockAnswerRepo.On("GetByQuestionID", ctx, question.ID()).Return([]*entities.Answer{}, nil)

	handler := NewListAnswersHandler(mockAnswerRepo, mockQuestionRepo, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, queries.ListAnswersQuery{QuestionID: question.ID().String()})

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, result.Items)
}
