package queries

import (
	"errors"
	"time"

	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
)

// GetQuestionQuery represents a query to get a single question
type GetQuestionQuery struct {
	QuestionID string
	// ViewerID, when set, resolves the viewer's own vote on the question
	ViewerID string
}

// Validate validates the GetQuestionQuery
func (q GetQuestionQuery) Validate() error {
	if q.QuestionID == "" {
		return errors.New("question ID is required")
	}
	return nil
}

// CommentView is the read model for a comment
type CommentView struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuestionView is the read model for a question
type QuestionView struct {
	ID        string        `json:"id"`
	AuthorID  string        `json:"authorId"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Tags      []string      `json:"tags"`
	Upvotes   int           `json:"upvotes"`
	Downvotes int           `json:"downvotes"`
	Score     int           `json:"score"`
	// ViewerVote is "up", "down", or "" when the viewer has not voted
	ViewerVote string        `json:"viewerVote,omitempty"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// NewQuestionView maps a question entity to its read model
func NewQuestionView(question *entities.Question, viewer valueobjects.UserID) QuestionView {
	votes := question.Votes()

	view := QuestionView{
		ID:        question.ID().String(),
		AuthorID:  question.AuthorID().String(),
		Title:     question.Title(),
		Content:   question.Content(),
		Tags:      question.GetTags(),
		Upvotes:   votes.UpvoteCount(),
		Downvotes: votes.DownvoteCount(),
		Score:     votes.Score(),
		Comments:  newCommentViews(question.GetComments()),
		CreatedAt: question.CreatedAt(),
		UpdatedAt: question.UpdatedAt(),
	}

	if !viewer.IsZero() {
		view.ViewerVote = viewerVote(votes, viewer)
	}

	return view
}

func newCommentViews(comments []entities.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:        c.ID,
			AuthorID:  c.AuthorID.String(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return views
}

func viewerVote(votes *entities.VoteLedger, viewer valueobjects.UserID) string {
	switch {
	case votes.HasUpvoted(viewer):
		return string(entities.VoteUp)
	case votes.HasDownvoted(viewer):
		return string(entities.VoteDown)
	default:
		return ""
	}
}
