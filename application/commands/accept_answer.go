package commands

import "fmt"

// AcceptAnswerCommand marks an answer as the question's chosen solution.
// Only the question author may issue it; accepting a second answer moves
// the acceptance (and the reputation award) off the previous one.
type AcceptAnswerCommand struct {
	AnswerID   string `json:"answer_id" validate:"required,uuid"`
	AcceptedBy string `json:"accepted_by" validate:"required"`
}

// Validate validates the command
func (c AcceptAnswerCommand) Validate() error {
	if c.AnswerID == "" {
		return fmt.Errorf("answer ID is required")
	}
	if c.AcceptedBy == "" {
		return fmt.Errorf("accepting user ID is required")
	}
	return nil
}
