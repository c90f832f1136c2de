package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestAddCommentHandler_Handle_OnQuestion(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	logger := zap.NewNop()

	question := fixtures.NewQuestionBuilder().MustBuild()

	cmd := commands.AddCommentCommand{
		Target:   commands.CommentOnQuestion,
		TargetID: question.ID().String(),
		AuthorID: "commenter-1",
		Content:  "Could you share the error message?",
	}

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(question, nil)
	mockQuestionRepo.On("AppendComment", ctx, question.ID(), mock.AnythingOfType("entities.Comment")).Return(nil)

	handler := NewAddCommentHandler(mockQuestionRepo, mockAnswerRepo, logger)

	// Act
	comment, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Could you share the error message?", comment.Content)
	assert.NotEmpty(t, comment.ID)
	mockQuestionRepo.AssertExpectations(t)
}

func TestAddCommentHandler_Handle_OnAnswer(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)
	mockAnswerRepo := new(mocks.MockAnswerRepository)

	answer := fixtures.NewAnswerBuilder().MustBuild()

	cmd := commands.AddCommentCommand{
		Target:   commands.CommentOnAnswer,
		TargetID: answer.ID().String(),
		AuthorID: "commenter-1",
		Content:  "This worked for me, thanks.",
	}

	mockAnswerRepo.On("GetByID", ctx, answer.ID()).Return(answer, nil)
	mockAnswerRepo.On("AppendComment", ctx, answer.ID(), mock.AnythingOfType("entities.Comment")).Return(nil)

	handler := NewAddCommentHandler(mockQuestionRepo, mockAnswerRepo, zap.NewNop())

	// Act
	comment, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "This worked for me, thanks.", comment.Content)
	mockAnswerRepo.AssertExpectations(t)
}

func TestAddCommentHandler_Handle_BlankContentRejected(t *testing.T) {
	// Arrange
	handler := NewAddCommentHandler(
		new(mocks.MockQuestionRepository),
		new(mocks.MockAnswerRepository),
		zap.NewNop(),
	)

	question := fixtures.NewQuestionBuilder().MustBuild()
	cmd := commands.AddCommentCommand{
		Target:   commands.CommentOnQuestion,
		TargetID: question.ID().String(),
		AuthorID: "commenter-1",
		Content:  "   ",
	}

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestAddCommentHandler_Handle_TargetMissing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockQuestionRepo := new(mocks.MockQuestionRepository)

	question := fixtures.NewQuestionBuilder().MustBuild()
	cmd := commands.AddCommentCommand{
		Target:   commands.CommentOnQuestion,
		TargetID: question.ID().String(),
		AuthorID: "commenter-1",
		Content:  "A comment on a missing question.",
	}

	mockQuestionRepo.On("GetByID", ctx, question.ID()).Return(nil, pkgerrors.NewNotFoundError("question"))

	handler := NewAddCommentHandler(mockQuestionRepo, new(mocks.MockAnswerRepository), zap.NewNop())

	// Act
	_, err := handler.Handle(ctx, cmd)

	// Assert
	assert.True(t, pkgerrors.IsNotFound(err))
	mockQuestionRepo.AssertNotCalled(t, "AppendComment", mock.Anything, mock.Anything, mock.Anything)
}
