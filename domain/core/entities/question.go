package entities

import (
	"strings"
	"time"

	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
	pkgerrors "peersphere-backend/pkg/errors"
)

const (
	// MinTitleLength is the minimum number of characters in a question title
	MinTitleLength = 10
	// MinQuestionContentLength is the minimum number of characters in a question body
	MinQuestionContentLength = 20
	// MaxTagsPerQuestion caps the number of tags attached to a question
	MaxTagsPerQuestion = 5
)

// Comment is a short remark attached to a question or an answer.
// Comments are append-only and carry no votes.
type Comment struct {
	ID        string              `json:"id"`
	AuthorID  valueobjects.UserID `json:"author_id"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
}

// Question is the root entity of the Q&A domain. It owns its vote ledger
// and its comments; answers are separate aggregates referenced by question ID.
type Question struct {
	// Private fields ensure encapsulation
	id        valueobjects.QuestionID
	authorID  valueobjects.UserID
	title     string
	content   string
	tags      []string
	votes     *VoteLedger
	comments  []Comment
	createdAt time.Time
	updatedAt time.Time
	version   int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewQuestion creates a new question with full business rule validation
func NewQuestion(authorID valueobjects.UserID, title, content string, tags []string) (*Question, error) {
	if authorID.IsZero() {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}

	title = strings.TrimSpace(title)
	if len(title) < MinTitleLength {
		return nil, pkgerrors.NewValidationError("title must be at least 10 characters")
	}

	content = strings.TrimSpace(content)
	if len(content) < MinQuestionContentLength {
		return nil, pkgerrors.NewValidationError("content must be at least 20 characters")
	}

	if len(tags) > MaxTagsPerQuestion {
		return nil, pkgerrors.NewValidationError("a question can carry at most 5 tags")
	}

	now := time.Now()
	question := &Question{
		id:        valueobjects.NewQuestionID(),
		authorID:  authorID,
		title:     title,
		content:   content,
		tags:      normalizeTags(tags),
		votes:     NewVoteLedger(),
		comments:  []Comment{},
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	question.addEvent(events.NewQuestionCreated(question.id, authorID, title, question.tags, now))

	return question, nil
}

// ReconstructQuestion reconstructs a question from repository data with preserved timestamps
func ReconstructQuestion(
	id valueobjects.QuestionID,
	authorID valueobjects.UserID,
	title, content string,
	tags []string,
	votes *VoteLedger,
	comments []Comment,
	createdAt, updatedAt time.Time,
	version int,
) (*Question, error) {
	if authorID.IsZero() {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}

	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}

	if votes == nil {
		votes = NewVoteLedger()
	}

	if comments == nil {
		comments = []Comment{}
	}

	question := &Question{
		id:        id,
		authorID:  authorID,
		title:     title,
		content:   content,
		tags:      normalizeTags(tags),
		votes:     votes,
		comments:  comments,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
		events:    []events.DomainEvent{},
	}

	return question, nil
}

// ID returns the question's unique identifier
func (q *Question) ID() valueobjects.QuestionID {
	return q.id
}

// AuthorID returns the author's ID
func (q *Question) AuthorID() valueobjects.UserID {
	return q.authorID
}

// Title returns the question title
func (q *Question) Title() string {
	return q.title
}

// Content returns the question body
func (q *Question) Content() string {
	return q.content
}

// Version returns the question's version for optimistic locking
func (q *Question) Version() int {
	return q.version
}

// Vote records a vote from the given user, flipping an existing opposite
// vote if one is present. It returns the resulting change, whose
// ReputationDelta applies to the question author.
func (q *Question) Vote(voter valueobjects.UserID, direction VoteDirection) (VoteChange, error) {
	change, err := q.votes.Cast(voter, direction, "question")
	if err != nil {
		return VoteChange{}, err
	}

	q.updatedAt = time.Now()
	q.version++

	q.addEvent(events.NewQuestionVoted(q.id, voter, q.authorID, string(direction), change.Flipped, q.updatedAt))

	return change, nil
}

// Votes returns the question's vote ledger
func (q *Question) Votes() *VoteLedger {
	return q.votes
}

// Score returns upvotes minus downvotes
func (q *Question) Score() int {
	return q.votes.Score()
}

// AddComment appends a comment to the question
func (q *Question) AddComment(authorID valueobjects.UserID, content string) (Comment, error) {
	if authorID.IsZero() {
		return Comment{}, pkgerrors.NewUnauthorizedError("authentication required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, pkgerrors.NewValidationError("comment cannot be empty")
	}

	comment := Comment{
		ID:        valueobjects.NewQuestionID().String(), // Reuse UUID generation
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	q.comments = append(q.comments, comment)
	q.updatedAt = comment.CreatedAt

	return comment, nil
}

// GetComments returns all comments
func (q *Question) GetComments() []Comment {
	// Return a copy to maintain encapsulation
	comments := make([]Comment, len(q.comments))
	copy(comments, q.comments)
	return comments
}

// GetTags returns all tags
func (q *Question) GetTags() []string {
	// Return a copy to maintain encapsulation
	tags := make([]string, len(q.tags))
	copy(tags, q.tags)
	return tags
}

// CreatedAt returns when the question was created
func (q *Question) CreatedAt() time.Time {
	return q.createdAt
}

// UpdatedAt returns when the question was last updated
func (q *Question) UpdatedAt() time.Time {
	return q.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (q *Question) GetUncommittedEvents() []events.DomainEvent {
	return q.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (q *Question) MarkEventsAsCommitted() {
	q.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (q *Question) addEvent(event events.DomainEvent) {
	q.events = append(q.events, event)
}

// normalizeTags lowercases, trims, and deduplicates tags
func normalizeTags(tags []string) []string {
	normalized := []string{}
	seen := make(map[string]bool)

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		normalized = append(normalized, tag)
		seen[tag] = true
	}

	return normalized
}
