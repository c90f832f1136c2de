package commands

import (
	"fmt"
	"strings"

	"peersphere-backend/domain/core/entities"
)

// CreateQuestionCommand posts a new question
type CreateQuestionCommand struct {
	AuthorID string   `json:"author_id" validate:"required"`
	Title    string   `json:"title" validate:"required,min=10,max=200"`
	Content  string   `json:"content" validate:"required,min=20,max=50000"`
	Tags     []string `json:"tags" validate:"max=5,dive,min=1,max=30"`
}

// Validate validates the command
func (c CreateQuestionCommand) Validate() error {
	if c.AuthorID == "" {
		return fmt.Errorf("author ID is required")
	}
	if len(strings.TrimSpace(c.Title)) < entities.MinTitleLength {
		return fmt.Errorf("title must be at least %d characters", entities.MinTitleLength)
	}
	if len(strings.TrimSpace(c.Content)) < entities.MinQuestionContentLength {
		return fmt.Errorf("content must be at least %d characters", entities.MinQuestionContentLength)
	}
	if len(c.Tags) > entities.MaxTagsPerQuestion {
		return fmt.Errorf("at most %d tags allowed", entities.MaxTagsPerQuestion)
	}
	return nil
}
