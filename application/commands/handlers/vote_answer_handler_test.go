package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
	"peersphere-backend/tests/fixtures"
	"peersphere-backend/tests/mocks"
)

func TestVoteAnswerHandler_Handle_Upvote(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	answer := fixtures.NewAnswerBuilder().WithAuthorID("answerer-1").MustBuild()
	answerer, _ := valueobjects.NewUserID("answerer-1")

	cmd := commands.VoteAnswerCommand{
		AnswerID:  answer.ID().String(),
		VoterID:   "voter-1",
		Direction: "up",
	}

	mockAnswerRepo.On("GetByID", ctx, answer.ID()).Return(answer, nil)
	mockAnswerRepo.On("ApplyVote", ctx, answer.ID(), mock.AnythingOfType("entities.VoteChange")).Return(nil)
	// Answer upvotes are worth +10, double the question rate
	mockUserRepo.On("AdjustReputation", ctx, answerer, entities.AnswerUpvotePoints).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewVoteAnswerHandler(mockAnswerRepo, mockUserRepo, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Score())
	mockAnswerRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestVoteAnswerHandler_Handle_FlipDownToUp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	answer := fixtures.NewAnswerBuilder().WithAuthorID("answerer-1").MustBuild()
	answerer, _ := valueobjects.NewUserID("answerer-1")
	voter, _ := valueobjects.NewUserID("voter-1")
	_, err := answer.Vote(voter, entities.VoteDown)
	assert.NoError(t, err)
	answer.MarkEventsAsCommitted()

	cmd := commands.VoteAnswerCommand{
		AnswerID:  answer.ID().String(),
		VoterID:   "voter-1",
		Direction: "up",
	}

	mockAnswerRepo.On("GetByID", ctx, answer.ID()).Return(answer, nil)
	mockAnswerRepo.On("ApplyVote", ctx, answer.ID(), mock.AnythingOfType("entities.VoteChange")).Return(nil)
	// 10 - (-2): the flip reverses the earlier downvote penalty
	mockUserRepo.On("AdjustReputation", ctx, answerer, 12).Return(nil)
	mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewVoteAnswerHandler(mockAnswerRepo, mockUserRepo, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Score())
	assert.True(t, result.Votes().HasUpvoted(voter))
	mockUserRepo.AssertExpectations(t)
}

func TestVoteAnswerHandler_Handle_DuplicateVote(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	answer := fixtures.NewAnswerBuilder().WithAuthorID("answerer-1").MustBuild()
	voter, _ := valueobjects.NewUserID("voter-1")
	_, err := answer.Vote(voter, entities.VoteDown)
	assert.NoError(t, err)
	answer.MarkEventsAsCommitted()

	cmd := commands.VoteAnswerCommand{
		AnswerID:  answer.ID().String(),
		VoterID:   "voter-1",
		Direction: "down",
	}

	mockAnswerRepo.On("GetByID", ctx, answer.ID()).Return(answer, nil)

	handler := NewVoteAnswerHandler(mockAnswerRepo, mockUserRepo, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.Nil(t, result)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeAlreadyVoted))
	mockAnswerRepo.AssertNotCalled(t, "ApplyVote", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "AdjustReputation", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteAnswerHandler_Handle_ConcurrentDuplicateFromStore(t *testing.T) {
	// Arrange: the in-memory check passes but another process won the
	// race; the store's conditional write reports the duplicate.
	ctx := context.Background()
	mockAnswerRepo := new(mocks.MockAnswerRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockPublisher := new(mocks.MockEventPublisher)
	logger := zap.NewNop()

	answer := fixtures.NewAnswerBuilder().WithAuthorID("answerer-1").MustBuild()

	cmd := commands.VoteAnswerCommand{
		AnswerID:  answer.ID().String(),
		VoterID:   "voter-1",
		Direction: "up",
	}

	mockAnswerRepo.On("GetByID", ctx, answer.ID()).Return(answer, nil)
	mockAnswerRepo.On("ApplyVote", ctx, answer.ID(), mock.AnythingOfType("entities.VoteChange")).
		Return(pkgerrors.NewAlreadyVotedError("answer"))

	handler := NewVoteAnswerHandler(mockAnswerRepo, mockUserRepo, mockPublisher, logger)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	assert.Nil(t, result)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeAlreadyVoted))
	mockUserRepo.AssertNotCalled(t, "AdjustReputation", mock.Anything, mock.Anything, mock.Anything)
}
