package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// AnswerID is a value object representing a unique answer identifier
type AnswerID struct {
	value string
}

// NewAnswerID creates a new random AnswerID
func NewAnswerID() AnswerID {
	return AnswerID{value: uuid.New().String()}
}

// NewAnswerIDFromString creates an AnswerID from an existing string
func NewAnswerIDFromString(id string) (AnswerID, error) {
	if id == "" {
		return AnswerID{}, errors.New("answer ID cannot be empty")
	}
	if !isValidUUID(id) {
		return AnswerID{}, errors.New("answer ID must be a valid UUID")
	}
	return AnswerID{value: id}, nil
}

// String returns the string representation of the AnswerID
func (id AnswerID) String() string {
	return id.value
}

// Equals checks if two AnswerIDs are equal
func (id AnswerID) Equals(other AnswerID) bool {
	return id.value == other.value
}

// IsZero checks if the AnswerID is the zero value
func (id AnswerID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id AnswerID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *AnswerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("AnswerID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
