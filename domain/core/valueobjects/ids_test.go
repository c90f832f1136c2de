package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewQuestionID(t *testing.T) {
	id := NewQuestionID()

	assert.NotEmpty(t, id.String())
	assert.False(t, id.IsZero())

	// Should be a valid UUID
	_, err := uuid.Parse(id.String())
	assert.NoError(t, err)
}

func TestNewQuestionIDFromString(t *testing.T) {
	validUUID := uuid.New().String()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid UUID string", input: validUUID, wantErr: false},
		{name: "empty string", input: "", wantErr: true},
		{name: "invalid UUID format", input: "not-a-uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewQuestionIDFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, id.IsZero())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, id.String())
			}
		})
	}
}

func TestNewAnswerIDFromString(t *testing.T) {
	validUUID := uuid.New().String()

	id, err := NewAnswerIDFromString(validUUID)
	assert.NoError(t, err)
	assert.Equal(t, validUUID, id.String())

	_, err = NewAnswerIDFromString("not-a-uuid")
	assert.Error(t, err)

	_, err = NewAnswerIDFromString("")
	assert.Error(t, err)
}

func TestNewUserID(t *testing.T) {
	// User IDs come from the identity provider and need not be UUIDs
	id, err := NewUserID("cognito|abc123")
	assert.NoError(t, err)
	assert.Equal(t, "cognito|abc123", id.String())
	assert.False(t, id.IsZero())

	_, err = NewUserID("")
	assert.Error(t, err)
}

func TestUserID_Equals(t *testing.T) {
	a, _ := NewUserID("user-1")
	b, _ := NewUserID("user-1")
	c, _ := NewUserID("user-2")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestQuestionID_JSONRoundTrip(t *testing.T) {
	id := NewQuestionID()

	data, err := json.Marshal(id)
	assert.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded QuestionID
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equals(decoded))
}
