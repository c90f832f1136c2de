// Package mocks provides testify mocks of the application ports for
// handler unit tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
)

// MockQuestionRepository is a mock implementation of ports.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Save(ctx context.Context, question *entities.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id valueobjects.QuestionID) (*entities.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, criteria ports.ListCriteria) ([]*entities.Question, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByAuthorID(ctx context.Context, authorID valueobjects.UserID) ([]*entities.Question, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Question), args.Error(1)
}

func (m *MockQuestionRepository) ApplyVote(ctx context.Context, id valueobjects.QuestionID, change entities.VoteChange) error {
	args := m.Called(ctx, id, change)
	return args.Error(0)
}

func (m *MockQuestionRepository) AppendComment(ctx context.Context, id valueobjects.QuestionID, comment entities.Comment) error {
	args := m.Called(ctx, id, comment)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id valueobjects.QuestionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAnswerRepository is a mock implementation of ports.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Save(ctx context.Context, answer *entities.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetByID(ctx context.Context, id valueobjects.AnswerID) (*entities.Answer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) ([]*entities.Answer, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetAcceptedByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) (*entities.Answer, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ApplyVote(ctx context.Context, id valueobjects.AnswerID, change entities.VoteChange) error {
	args := m.Called(ctx, id, change)
	return args.Error(0)
}

func (m *MockAnswerRepository) MarkAccepted(ctx context.Context, id valueobjects.AnswerID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnswerRepository) ClearAccepted(ctx context.Context, id valueobjects.AnswerID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnswerRepository) AppendComment(ctx context.Context, id valueobjects.AnswerID, comment entities.Comment) error {
	args := m.Called(ctx, id, comment)
	return args.Error(0)
}

func (m *MockAnswerRepository) Delete(ctx context.Context, id valueobjects.AnswerID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) AdjustReputation(ctx context.Context, id valueobjects.UserID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementQuestionsAsked(ctx context.Context, id valueobjects.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementAnswersGiven(ctx context.Context, id valueobjects.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Follow(ctx context.Context, followerID, followeeID valueobjects.UserID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserRepository) Unfollow(ctx context.Context, followerID, followeeID valueobjects.UserID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserRepository) Leaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewAnswer(ctx context.Context, questionAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error {
	args := m.Called(ctx, questionAuthorID, questionID, answerID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAnswerAccepted(ctx context.Context, answerAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error {
	args := m.Called(ctx, answerAuthorID, questionID, answerID)
	return args.Error(0)
}

// MockCache is a mock implementation of ports.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (interface{}, bool) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
