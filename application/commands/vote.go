package commands

import (
	"fmt"

	"peersphere-backend/domain/core/entities"
)

// VoteQuestionCommand casts or flips a vote on a question
type VoteQuestionCommand struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	VoterID    string `json:"voter_id" validate:"required"`
	Direction  string `json:"direction" validate:"required,oneof=up down"`
}

// Validate validates the command
func (c VoteQuestionCommand) Validate() error {
	if c.QuestionID == "" {
		return fmt.Errorf("question ID is required")
	}
	if c.VoterID == "" {
		return fmt.Errorf("voter ID is required")
	}
	return validateDirection(c.Direction)
}

// VoteAnswerCommand casts or flips a vote on an answer
type VoteAnswerCommand struct {
	AnswerID  string `json:"answer_id" validate:"required,uuid"`
	VoterID   string `json:"voter_id" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// Validate validates the command
func (c VoteAnswerCommand) Validate() error {
	if c.AnswerID == "" {
		return fmt.Errorf("answer ID is required")
	}
	if c.VoterID == "" {
		return fmt.Errorf("voter ID is required")
	}
	return validateDirection(c.Direction)
}

func validateDirection(direction string) error {
	switch entities.VoteDirection(direction) {
	case entities.VoteUp, entities.VoteDown:
		return nil
	default:
		return fmt.Errorf("direction must be %q or %q", entities.VoteUp, entities.VoteDown)
	}
}
