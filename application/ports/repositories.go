package ports

import (
	"context"

	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
)

// QuestionRepository defines the interface for question persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type QuestionRepository interface {
	// Save persists a question (create or update)
	Save(ctx context.Context, question *entities.Question) error

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id valueobjects.QuestionID) (*entities.Question, error)

	// List retrieves questions newest-first
	List(ctx context.Context, criteria ListCriteria) ([]*entities.Question, error)

	// GetByAuthorID retrieves all questions posted by a user
	GetByAuthorID(ctx context.Context, authorID valueobjects.UserID) ([]*entities.Question, error)

	// ApplyVote atomically moves the voter between the question's vote sets.
	// It fails with an AlreadyVoted error if the voter is already in the
	// target set, even when a concurrent writer got there first.
	ApplyVote(ctx context.Context, id valueobjects.QuestionID, change entities.VoteChange) error

	// AppendComment appends a comment to the question's comment list
	AppendComment(ctx context.Context, id valueobjects.QuestionID, comment entities.Comment) error

	// Delete removes a question
	Delete(ctx context.Context, id valueobjects.QuestionID) error
}

// AnswerRepository defines the interface for answer persistence
type AnswerRepository interface {
	// Save persists an answer (create or update)
	Save(ctx context.Context, answer *entities.Answer) error

	// GetByID retrieves an answer by its ID
	GetByID(ctx context.Context, id valueobjects.AnswerID) (*entities.Answer, error)

	// GetByQuestionID retrieves all answers for a question, oldest first
	GetByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) ([]*entities.Answer, error)

	// GetAcceptedByQuestionID retrieves the question's accepted answer, or a
	// NotFound error when none exists
	GetAcceptedByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) (*entities.Answer, error)

	// ApplyVote atomically moves the voter between the answer's vote sets.
	// It fails with an AlreadyVoted error if the voter is already in the
	// target set, even when a concurrent writer got there first.
	ApplyVote(ctx context.Context, id valueobjects.AnswerID, change entities.VoteChange) error

	// MarkAccepted flips the accepted flag on, conditioned on it being off.
	// A lost race surfaces as an AlreadyAccepted error.
	MarkAccepted(ctx context.Context, id valueobjects.AnswerID) error

	// ClearAccepted flips the accepted flag off
	ClearAccepted(ctx context.Context, id valueobjects.AnswerID) error

	// AppendComment appends a comment to the answer's comment list
	AppendComment(ctx context.Context, id valueobjects.AnswerID, comment entities.Comment) error

	// Delete removes an answer
	Delete(ctx context.Context, id valueobjects.AnswerID) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save persists a user profile (create or update)
	Save(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error)

	// AdjustReputation applies a signed delta to the stored reputation as a
	// single atomic increment, never read-modify-write
	AdjustReputation(ctx context.Context, id valueobjects.UserID, delta int) error

	// IncrementQuestionsAsked bumps the questions counter atomically
	IncrementQuestionsAsked(ctx context.Context, id valueobjects.UserID) error

	// IncrementAnswersGiven bumps the answers counter atomically
	IncrementAnswersGiven(ctx context.Context, id valueobjects.UserID) error

	// Follow records follower -> followee on both profiles. A duplicate
	// follow fails with an AlreadyFollowing error.
	Follow(ctx context.Context, followerID, followeeID valueobjects.UserID) error

	// Unfollow removes follower -> followee from both profiles
	Unfollow(ctx context.Context, followerID, followeeID valueobjects.UserID) error

	// Leaderboard returns the top users ordered by reputation descending
	Leaderboard(ctx context.Context, limit int) ([]*entities.User, error)
}

// ListCriteria defines pagination parameters for question listings
type ListCriteria struct {
	Tag       string
	Limit     int
	NextToken string
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Notifier delivers user-facing notifications. Delivery is best-effort:
// a failed notification never fails the operation that triggered it.
type Notifier interface {
	// NotifyNewAnswer tells the question author a new answer arrived
	NotifyNewAnswer(ctx context.Context, questionAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error

	// NotifyAnswerAccepted tells the answer author their answer was accepted
	NotifyAnswerAccepted(ctx context.Context, answerAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
