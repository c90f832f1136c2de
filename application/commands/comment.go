package commands

import (
	"fmt"
	"strings"
)

// CommentTarget names the kind of entity a comment attaches to
type CommentTarget string

const (
	CommentOnQuestion CommentTarget = "question"
	CommentOnAnswer   CommentTarget = "answer"
)

// AddCommentCommand appends a comment to a question or an answer
type AddCommentCommand struct {
	Target   CommentTarget `json:"target" validate:"required,oneof=question answer"`
	TargetID string        `json:"target_id" validate:"required,uuid"`
	AuthorID string        `json:"author_id" validate:"required"`
	Content  string        `json:"content" validate:"required,min=1,max=1000"`
}

// Validate validates the command
func (c AddCommentCommand) Validate() error {
	if c.Target != CommentOnQuestion && c.Target != CommentOnAnswer {
		return fmt.Errorf("target must be %q or %q", CommentOnQuestion, CommentOnAnswer)
	}
	if c.TargetID == "" {
		return fmt.Errorf("target ID is required")
	}
	if c.AuthorID == "" {
		return fmt.Errorf("author ID is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
