package commands

import (
	"fmt"
	"strings"

	"peersphere-backend/domain/core/entities"
)

// CreateAnswerCommand posts a new answer to a question
type CreateAnswerCommand struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	AuthorID   string `json:"author_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=10,max=50000"`
}

// Validate validates the command
func (c CreateAnswerCommand) Validate() error {
	if c.QuestionID == "" {
		return fmt.Errorf("question ID is required")
	}
	if c.AuthorID == "" {
		return fmt.Errorf("author ID is required")
	}
	if len(strings.TrimSpace(c.Content)) < entities.MinAnswerContentLength {
		return fmt.Errorf("content must be at least %d characters", entities.MinAnswerContentLength)
	}
	return nil
}
