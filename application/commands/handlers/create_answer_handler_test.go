package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestCreateAnswerHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockNotifier := new(mocks.MockNotifier)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	question := fixtures.NewQuestionBuilder().WithAuthorID("asker-1").MustBuild()
	asker, _ := valueobjects.NewUserID("asker-1")
	answerer, _ := valueobjects.NewUserID("answerer-1")

	cmd := commands.CreateAnswerCommand{
		QuestionID: question.ID().String(),
		AuthorID:   "answerer-1",
		Content:    "Use the LastEvaluatedKey as the ExclusiveStartKey of the next query.",
	}

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockAnswerRepo.On("Save", ctx, mock.AnythingOfType("*entities.Answer")).Return(nil)
	mockUserRepo.On("IncrementAnswersGiven", ctx, answerer).Return(nil)
	mockNotifier.On("NotifyNewAnswer", ctx, asker, question.ID(), mock.AnythingOfType("valueobjects.AnswerID")).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewCreateAnswerHandler(mockAnswerRepo, mockQuestionRepo, mockUserRepo, mockNotifier, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, question.ID(), result.QuestionID())
	assert.False(t, result.IsAccepted())
	mockAnswerRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestCreateAnswerHandler_Handle_QuestionNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)

	questionID := valueobjects.NewQuestionID()
	cmd := commands.CreateAnswerCommand{
		QuestionID: questionID.String(),
		AuthorID:   "answerer-1",
		Content:    "An answer to a question that does not exist.",
	}

	mockQuestionRepo.On("GetByID", ctx, questionID).Return(nil, pkgerrors.NewNotFoundError("question"))

	handler := NewCreateAnswerHandler(
		mockAnswerRepo, mockQuestionRepo,
		new(mocks.MockUserRepository), new(mocks.MockNotifier), new(mocks.MockEventPublisher),
		zap.NewNop(),
	)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNotFound(err))
	mockAnswerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateAnswerHandler_Handle_SelfAnswerSkipsNotification(t *testing.T) {
	// Arrange: authors answering their own question don't get notified
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockNotifier := new(mocks.MockNotifier)
	mockPublisher := new(mocks.MockEventPublisher)

	question := fixtures.NewQuestionBuilder().WithAuthorID("asker-1").MustBuild()
	asker, _ := valueobjects.NewUserID("asker-1")

	cmd := commands.CreateAnswerCommand{
		QuestionID: question.ID().String(),
		AuthorID:   "asker-1",
		Content:    "Answering my own question after figuring it out.",
	}

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockAnswerRepo.On("Save", ctx, mock.AnythingOfType("*entities.Answer")).Return(nil)
	mockUserRepo.On("IncrementAnswersGiven", ctx, asker).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewCreateAnswerHandler(mockAnswerRepo, mockQuestionRepo, mockUserRepo, mockNotifier, mockPublisher, zap.NewNop())

	// Act
	_, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	mockNotifier.AssertNotCalled(t, "NotifyNewAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
