package queries

import (
	"errors"
	"time"

	"peersphere-backend/domain/core/entities"
)

// DefaultPageSize caps question listings when the caller does not set a limit
const DefaultPageSize = 20

// MaxPageSize is the hard listing cap
const MaxPageSize = 100

// ListQuestionsQuery represents a query for a page of questions, newest first
type ListQuestionsQuery struct {
	Tag       string
	Limit     int
	NextToken string
}

// Validate validates the ListQuestionsQuery
func (q ListQuestionsQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if q.Limit > MaxPageSize {
		return errors.New("limit exceeds the maximum page size")
	}
	return nil
}

// EffectiveLimit resolves the page size to use
func (q ListQuestionsQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultPageSize
	}
	return q.Limit
}

// QuestionSummary is the condensed read model used in listings
type QuestionSummary struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	Score        int       `json:"score"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListQuestionsResult represents a page of question summaries
type ListQuestionsResult struct {
	Items     []QuestionSummary `json:"items"`
	NextToken string            `json:"nextToken,omitempty"`
}

// NewQuestionSummary maps a question entity to its listing read model
func NewQuestionSummary(question *entities.Question) QuestionSummary {
	return QuestionSummary{
		ID:           question.ID().String(),
		AuthorID:     question.AuthorID().String(),
		Title:        question.Title(),
		Tags:         question.GetTags(),
		Score:        question.Score(),
		CommentCount: len(question.GetComments()),
		CreatedAt:    question.CreatedAt(),
	}
}
