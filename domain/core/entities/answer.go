package entities

import (
	"strings"
	"time"

	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
	pkgerrors "peersphere-backend/pkg/errors"
)

// MinAnswerContentLength is the minimum number of characters in an answer body
const MinAnswerContentLength = 10

// Answer is a response to a question. At most one answer per question may be
// accepted; acceptance is decided by the question author, never the answer author.
type Answer struct {
	// Private fields ensure encapsulation
	id         valueobjects.AnswerID
	questionID valueobjects.QuestionID
	authorID   valueobjects.UserID
	content    string
	votes      *VoteLedger
	comments   []Comment
	isAccepted bool
	createdAt  time.Time
	updatedAt  time.Time
	version    int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewAnswer creates a new answer with full business rule validation
func NewAnswer(questionID valueobjects.QuestionID, authorID valueobjects.UserID, content string) (*Answer, error) {
	if questionID.IsZero() {
		return nil, pkgerrors.NewValidationError("questionID cannot be empty")
	}

	if authorID.IsZero() {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}

	content = strings.TrimSpace(content)
	if len(content) < MinAnswerContentLength {
		return nil, pkgerrors.NewValidationError("content must be at least 10 characters")
	}

	now := time.Now()
	answer := &Answer{
		id:         valueobjects.NewAnswerID(),
		questionID: questionID,
		authorID:   authorID,
		content:    content,
		votes:      NewVoteLedger(),
		comments:   []Comment{},
		isAccepted: false,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
		events:     []events.DomainEvent{},
	}

	answer.addEvent(events.NewAnswerCreated(answer.id, questionID, authorID, now))

	return answer, nil
}

// ReconstructAnswer reconstructs an answer from repository data with preserved timestamps
func ReconstructAnswer(
	id valueobjects.AnswerID,
	questionID valueobjects.QuestionID,
	authorID valueobjects.UserID,
	content string,
	votes *VoteLedger,
	comments []Comment,
	isAccepted bool,
	createdAt, updatedAt time.Time,
	version int,
) (*Answer, error) {
	if authorID.IsZero() {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}

	if content == "" {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	if votes == nil {
		votes = NewVoteLedger()
	}

	if comments == nil {
		comments = []Comment{}
	}

	answer := &Answer{
		id:         id,
		questionID: questionID,
		authorID:   authorID,
		content:    content,
		votes:      votes,
		comments:   comments,
		isAccepted: isAccepted,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		version:    version,
		events:     []events.DomainEvent{},
	}

	return answer, nil
}

// ID returns the answer's unique identifier
func (a *Answer) ID() valueobjects.AnswerID {
	return a.id
}

// QuestionID returns the ID of the question this answer belongs to
func (a *Answer) QuestionID() valueobjects.QuestionID {
	return a.questionID
}

// AuthorID returns the author's ID
func (a *Answer) AuthorID() valueobjects.UserID {
	return a.authorID
}

// Content returns the answer body
func (a *Answer) Content() string {
	return a.content
}

// IsAccepted reports whether this answer is the question's chosen solution
func (a *Answer) IsAccepted() bool {
	return a.isAccepted
}

// Version returns the answer's version for optimistic locking
func (a *Answer) Version() int {
	return a.version
}

// Vote records a vote from the given user, flipping an existing opposite
// vote if one is present. It returns the resulting change, whose
// ReputationDelta applies to the answer author.
func (a *Answer) Vote(voter valueobjects.UserID, direction VoteDirection) (VoteChange, error) {
	change, err := a.votes.Cast(voter, direction, "answer")
	if err != nil {
		return VoteChange{}, err
	}

	a.updatedAt = time.Now()
	a.version++

	a.addEvent(events.NewAnswerVoted(a.id, voter, a.authorID, string(direction), change.Flipped, a.updatedAt))

	return change, nil
}

// Accept marks the answer as the question's chosen solution. Only the
// question author may accept, and an already-accepted answer is rejected.
func (a *Answer) Accept(questionAuthorID, acceptedBy valueobjects.UserID) error {
	if acceptedBy.IsZero() {
		return pkgerrors.NewUnauthorizedError("authentication required")
	}

	if !acceptedBy.Equals(questionAuthorID) {
		return pkgerrors.NewForbiddenError("only the question author can accept an answer")
	}

	if a.isAccepted {
		return pkgerrors.NewAlreadyAcceptedError()
	}

	a.isAccepted = true
	a.updatedAt = time.Now()
	a.version++

	a.addEvent(events.NewAnswerAccepted(a.id, a.questionID, a.authorID, acceptedBy, a.updatedAt))

	return nil
}

// Unaccept clears the accepted flag. Used when the question author switches
// acceptance to a different answer.
func (a *Answer) Unaccept() {
	if !a.isAccepted {
		return
	}

	a.isAccepted = false
	a.updatedAt = time.Now()
	a.version++
}

// Votes returns the answer's vote ledger
func (a *Answer) Votes() *VoteLedger {
	return a.votes
}

// Score returns upvotes minus downvotes
func (a *Answer) Score() int {
	return a.votes.Score()
}

// AddComment appends a comment to the answer
func (a *Answer) AddComment(authorID valueobjects.UserID, content string) (Comment, error) {
	if authorID.IsZero() {
		return Comment{}, pkgerrors.NewUnauthorizedError("authentication required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, pkgerrors.NewValidationError("comment cannot be empty")
	}

	comment := Comment{
		ID:        valueobjects.NewAnswerID().String(), // Reuse UUID generation
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	a.comments = append(a.comments, comment)
	a.updatedAt = comment.CreatedAt

	return comment, nil
}

// GetComments returns all comments
func (a *Answer) GetComments() []Comment {
	// Return a copy to maintain encapsulation
	comments := make([]Comment, len(a.comments))
	copy(comments, a.comments)
	return comments
}

// CreatedAt returns when the answer was created
func (a *Answer) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns when the answer was last updated
func (a *Answer) UpdatedAt() time.Time {
	return a.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (a *Answer) GetUncommittedEvents() []events.DomainEvent {
	return a.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (a *Answer) MarkEventsAsCommitted() {
	a.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (a *Answer) addEvent(event events.DomainEvent) {
	a.events = append(a.events, event)
}
