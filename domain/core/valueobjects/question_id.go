package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// QuestionID is a value object representing a unique question identifier
// Value objects are immutable and have no identity beyond their value
type QuestionID struct {
	value string
}

// NewQuestionID creates a new random QuestionID
func NewQuestionID() QuestionID {
	return QuestionID{value: uuid.New().String()}
}

// NewQuestionIDFromString creates a QuestionID from an existing string
func NewQuestionIDFromString(id string) (QuestionID, error) {
	if id == "" {
		return QuestionID{}, errors.New("question ID cannot be empty")
	}
	if !isValidUUID(id) {
		return QuestionID{}, errors.New("question ID must be a valid UUID")
	}
	return QuestionID{value: id}, nil
}

// String returns the string representation of the QuestionID
func (id QuestionID) String() string {
	return id.value
}

// Equals checks if two QuestionIDs are equal
func (id QuestionID) Equals(other QuestionID) bool {
	return id.value == other.value
}

// IsZero checks if the QuestionID is the zero value
func (id QuestionID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id QuestionID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("QuestionID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
