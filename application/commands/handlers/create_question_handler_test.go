package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/mocks"
)

func TestCreateQuestionHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	author, _ := valueobjects.NewUserID("asker-1")
	cmd := commands.CreateQuestionCommand{
		AuthorID: "asker-1",
		Title:    "How do I paginate DynamoDB queries?",
		Content:  "Every page seems to come back with a LastEvaluatedKey I don't understand.",
		Tags:     []string{"DynamoDB", "go"},
	}

	mockQuestionRepo.On("Save", ctx, mock.AnythingOfType("*entities.Question")).Return(nil)
	mockUserRepo.On("IncrementQuestionsAsked", ctx, author).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewCreateQuestionHandler(mockQuestionRepo, mockUserRepo, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, author, result.AuthorID())
	assert.Equal(t, []string{"dynamodb", "go"}, result.GetTags())
	assert.Empty(t, result.GetUncommittedEvents())
	mockQuestionRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateQuestionHandler_Handle_ValidationFailure(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	handler := NewCreateQuestionHandler(
		mockQuestionRepo,
		new(mocks.MockUserRepository),
		new(mocks.MockEventPublisher),
		zap.NewNop(),
	)

	cmd := commands.CreateQuestionCommand{
		AuthorID: "asker-1",
		Title:    "Too short",
		Content:  "This body is long enough to pass the content check.",
	}

	// Act
	result, err := handler.Handle(context.Background(), cmd)

	// Assert
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsValidation(err))
	mockQuestionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateQuestionHandler_Handle_CounterFailureIsBestEffort(t *testing.T) {
	// Arrange: the question is saved; a failed counter bump must not
	// fail the command.
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)

	author, _ := valueobjects.NewUserID("asker-1")
	cmd := commands.CreateQuestionCommand{
		AuthorID: "asker-1",
		Title:    "How do I paginate DynamoDB queries?",
		Content:  "Every page seems to come back with a LastEvaluatedKey I don't understand.",
	}

	mockQuestionRepo.On("Save", ctx, mock.AnythingOfType("*entities.Question")).Return(nil)
	mockUserRepo.On("IncrementQuestionsAsked", ctx, author).Return(errors.New("throughput exceeded"))
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewCreateQuestionHandler(mockQuestionRepo, mockUserRepo, mockPublisher, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCreateQuestionHandler_Handle_SaveFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockUserRepo := new(mocks.MockUserRepository)

	cmd := commands.CreateQuestionCommand{
		AuthorID: "asker-1",
		Title:    "How do I paginate DynamoDB queries?",
		Content:  "Every page seems to come back with a LastEvaluatedKey I don't understand.",
	}

	mockQuestionRepo.On("Save", ctx, mock.AnythingOfType("*entities.Question")).
		Return(pkgerrors.NewDatabaseError("save question", errors.New("conditional check failed")))

	handler := NewCreateQuestionHandler(mockQuestionRepo, mockUserRepo, new(mocks.MockEventPublisher), zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.Nil(t, result)
	assert.Error(t, err)
	mockUserRepo.AssertNotCalled(t, "IncrementQuestionsAsked", mock.Anything, mock.Anything)
}
