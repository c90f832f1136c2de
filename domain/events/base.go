package events

import (
	"time"

	"peersphere-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Question Events

// QuestionCreated is raised when a new question is posted
type QuestionCreated struct {
	BaseEvent
	QuestionID valueobjects.QuestionID `json:"question_id"`
	AuthorID   valueobjects.UserID     `json:"author_id"`
	Title      string                  `json:"title"`
	Tags       []string                `json:"tags"`
}

// NewQuestionCreated creates a QuestionCreated event
func NewQuestionCreated(questionID valueobjects.QuestionID, authorID valueobjects.UserID, title string, tags []string, timestamp time.Time) QuestionCreated {
	return QuestionCreated{
		BaseEvent: BaseEvent{
			AggregateID: questionID.String(),
			EventType:   "question.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		QuestionID: questionID,
		AuthorID:   authorID,
		Title:      title,
		Tags:       tags,
	}
}

// QuestionVoted is raised when a vote lands on a question
type QuestionVoted struct {
	BaseEvent
	QuestionID valueobjects.QuestionID `json:"question_id"`
	VoterID    valueobjects.UserID     `json:"voter_id"`
	AuthorID   valueobjects.UserID     `json:"author_id"`
	Direction  string                  `json:"direction"`
	Flipped    bool                    `json:"flipped"`
}

// NewQuestionVoted creates a QuestionVoted event
func NewQuestionVoted(questionID valueobjects.QuestionID, voterID, authorID valueobjects.UserID, direction string, flipped bool, timestamp time.Time) QuestionVoted {
	return QuestionVoted{
		BaseEvent: BaseEvent{
			AggregateID: questionID.String(),
			EventType:   "question.voted",
			Timestamp:   timestamp,
			Version:     1,
		},
		QuestionID: questionID,
		VoterID:    voterID,
		AuthorID:   authorID,
		Direction:  direction,
		Flipped:    flipped,
	}
}

// Answer Events

// AnswerCreated is raised when a new answer is posted to a question.
// Consumers use it to notify the question author.
type AnswerCreated struct {
	BaseEvent
	AnswerID   valueobjects.AnswerID   `json:"answer_id"`
	QuestionID valueobjects.QuestionID `json:"question_id"`
	AuthorID   valueobjects.UserID     `json:"author_id"`
}

// NewAnswerCreated creates an AnswerCreated event
func NewAnswerCreated(answerID valueobjects.AnswerID, questionID valueobjects.QuestionID, authorID valueobjects.UserID, timestamp time.Time) AnswerCreated {
	return AnswerCreated{
		BaseEvent: BaseEvent{
			AggregateID: answerID.String(),
			EventType:   "answer.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		AnswerID:   answerID,
		QuestionID: questionID,
		AuthorID:   authorID,
	}
}

// AnswerVoted is raised when a vote lands on an answer
type AnswerVoted struct {
	BaseEvent
	AnswerID  valueobjects.AnswerID `json:"answer_id"`
	VoterID   valueobjects.UserID   `json:"voter_id"`
	AuthorID  valueobjects.UserID   `json:"author_id"`
	Direction string                `json:"direction"`
	Flipped   bool                  `json:"flipped"`
}

// NewAnswerVoted creates an AnswerVoted event
func NewAnswerVoted(answerID valueobjects.AnswerID, voterID, authorID valueobjects.UserID, direction string, flipped bool, timestamp time.Time) AnswerVoted {
	return AnswerVoted{
		BaseEvent: BaseEvent{
			AggregateID: answerID.String(),
			EventType:   "answer.voted",
			Timestamp:   timestamp,
			Version:     1,
		},
		AnswerID:  answerID,
		VoterID:   voterID,
		AuthorID:  authorID,
		Direction: direction,
		Flipped:   flipped,
	}
}

// AnswerAccepted is raised when the question author marks an answer as the
// chosen solution. Consumers use it to notify the answer author.
type AnswerAccepted struct {
	BaseEvent
	AnswerID   valueobjects.AnswerID   `json:"answer_id"`
	QuestionID valueobjects.QuestionID `json:"question_id"`
	AuthorID   valueobjects.UserID     `json:"author_id"`
	AcceptedBy valueobjects.UserID     `json:"accepted_by"`
}

// NewAnswerAccepted creates an AnswerAccepted event
func NewAnswerAccepted(answerID valueobjects.AnswerID, questionID valueobjects.QuestionID, authorID, acceptedBy valueobjects.UserID, timestamp time.Time) AnswerAccepted {
	return AnswerAccepted{
		BaseEvent: BaseEvent{
			AggregateID: answerID.String(),
			EventType:   "answer.accepted",
			Timestamp:   timestamp,
			Version:     1,
		},
		AnswerID:   answerID,
		QuestionID: questionID,
		AuthorID:   authorID,
		AcceptedBy: acceptedBy,
	}
}

// User Events

// ReputationAdjusted is raised after a reputation delta is applied
type ReputationAdjusted struct {
	BaseEvent
	UserID valueobjects.UserID `json:"user_id"`
	Delta  int                 `json:"delta"`
	Reason string              `json:"reason"`
}

// NewReputationAdjusted creates a ReputationAdjusted event
func NewReputationAdjusted(userID valueobjects.UserID, delta int, reason string, timestamp time.Time) ReputationAdjusted {
	return ReputationAdjusted{
		BaseEvent: BaseEvent{
			AggregateID: userID.String(),
			EventType:   "user.reputation_adjusted",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID: userID,
		Delta:  delta,
		Reason: reason,
	}
}

// UserFollowed is raised when one user follows another
type UserFollowed struct {
	BaseEvent
	FollowerID valueobjects.UserID `json:"follower_id"`
	FolloweeID valueobjects.UserID `json:"followee_id"`
}

// NewUserFollowed creates a UserFollowed event
func NewUserFollowed(followerID, followeeID valueobjects.UserID, timestamp time.Time) UserFollowed {
	return UserFollowed{
		BaseEvent: BaseEvent{
			AggregateID: followeeID.String(),
			EventType:   "user.followed",
			Timestamp:   timestamp,
			Version:     1,
		},
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
}
