package queries

import (
	"errors"
	"time"

	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
)

// ListAnswersQuery represents a query for all answers to a question
type ListAnswersQuery struct {
	QuestionID string
	// ViewerID, when set, resolves the viewer's own vote on each answer
	ViewerID string
}

// Validate validates the ListAnswersQuery
func (q ListAnswersQuery) Validate() error {
	if q.QuestionID == "" {
		return errors.New("question ID is required")
	}
	return nil
}

// AnswerView is the read model for an answer
type AnswerView struct {
	ID         string        `json:"id"`
	QuestionID string        `json:"questionId"`
	AuthorID   string        `json:"authorId"`
	Content    string        `json:"content"`
	Upvotes    int           `json:"upvotes"`
	Downvotes  int           `json:"downvotes"`
	Score      int           `json:"score"`
	IsAccepted bool          `json:"isAccepted"`
	ViewerVote string        `json:"viewerVote,omitempty"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ListAnswersResult represents the answers to a question. The accepted
// answer, when present, is always first; the rest keep their posting order.
type ListAnswersResult struct {
	Items []AnswerView `json:"items"`
}

// NewAnswerView maps an answer entity to its read model
func NewAnswerView(answer *entities.Answer, viewer valueobjects.UserID) AnswerView {
	votes := answer.Votes()

	view := AnswerView{
		ID:         answer.ID().String(),
		QuestionID: answer.QuestionID().String(),
		AuthorID:   answer.AuthorID().String(),
		Content:    answer.Content(),
		Upvotes:    votes.UpvoteCount(),
		Downvotes:  votes.DownvoteCount(),
		Score:      votes.Score(),
		IsAccepted: answer.IsAccepted(),
		Comments:   newCommentViews(answer.GetComments()),
		CreatedAt:  answer.CreatedAt(),
		UpdatedAt:  answer.UpdatedAt(),
	}

	if !viewer.IsZero() {
		view.ViewerVote = viewerVote(votes, viewer)
	}

	return view
}
