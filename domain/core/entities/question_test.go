package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

func validQuestionArgs(t *testing.T) (valueobjects.UserID, string, string, []string) {
	t.Helper()
	return mustUserID(t, "author-1"),
		"How do I center a div?",
		"I have tried everything and the div refuses to center.",
		[]string{"css", "html"}
}

func TestNewQuestion_Success(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)

	question, err := NewQuestion(author, title, content, tags)

	assert.NoError(t, err)
	assert.False(t, question.ID().IsZero())
	assert.Equal(t, author, question.AuthorID())
	assert.Equal(t, title, question.Title())
	assert.Equal(t, []string{"css", "html"}, question.GetTags())
	assert.Equal(t, 1, question.Version())
	assert.Len(t, question.GetUncommittedEvents(), 1)
}

func TestNewQuestion_Validation(t *testing.T) {
	author, title, content, _ := validQuestionArgs(t)

	tests := []struct {
		name    string
		author  valueobjects.UserID
		title   string
		content string
		tags    []string
	}{
		{"zero author", valueobjects.UserID{}, title, content, nil},
		{"short title", author, "Too short", content, nil},
		{"whitespace padded short title", author, "   a    ", content, nil},
		{"short content", author, title, "short body", nil},
		{"too many tags", author, title, content, []string{"a", "b", "c", "d", "e", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestion(tt.author, tt.title, tt.content, tt.tags)
			assert.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestNewQuestion_NormalizesTags(t *testing.T) {
	author, title, content, _ := validQuestionArgs(t)

	question, err := NewQuestion(author, title, content, []string{" Go ", "go", "", "DynamoDB"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"go", "dynamodb"}, question.GetTags())
}

func TestQuestion_Vote(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)
	question, _ := NewQuestion(author, title, content, tags)
	question.MarkEventsAsCommitted()

	voter := mustUserID(t, "voter-1")
	change, err := question.Vote(voter, VoteUp)

	assert.NoError(t, err)
	assert.False(t, change.Flipped)
	assert.Equal(t, 1, question.Score())
	assert.Equal(t, 2, question.Version())
	assert.Len(t, question.GetUncommittedEvents(), 1)
}

func TestQuestion_Vote_DuplicateLeavesStateUntouched(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)
	question, _ := NewQuestion(author, title, content, tags)
	question.MarkEventsAsCommitted()

	voter := mustUserID(t, "voter-1")
	_, err := question.Vote(voter, VoteDown)
	assert.NoError(t, err)

	_, err = question.Vote(voter, VoteDown)

	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeAlreadyVoted))
	assert.Equal(t, -1, question.Score())
	assert.Equal(t, 2, question.Version())
}

func TestQuestion_AddComment(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)
	question, _ := NewQuestion(author, title, content, tags)

	commenter := mustUserID(t, "commenter-1")
	comment, err := question.AddComment(commenter, "  Nice question!  ")

	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "Nice question!", comment.Content)
	assert.Len(t, question.GetComments(), 1)
}

func TestQuestion_AddComment_Rejections(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)
	question, _ := NewQuestion(author, title, content, tags)

	_, err := question.AddComment(valueobjects.UserID{}, "hello")
	assert.True(t, pkgerrors.IsUnauthorized(err))

	_, err = question.AddComment(author, "   ")
	assert.True(t, pkgerrors.IsValidation(err))

	assert.Empty(t, question.GetComments())
}

func TestReconstructQuestion_PreservesState(t *testing.T) {
	author, title, content, tags := validQuestionArgs(t)
	original, _ := NewQuestion(author, title, content, tags)

	votes := ReconstructVoteLedger([]string{"alice"}, []string{"bob"})
	question, err := ReconstructQuestion(
		original.ID(), author, title, content, tags,
		votes, nil,
		original.CreatedAt(), original.UpdatedAt(), 3,
	)

	assert.NoError(t, err)
	assert.Equal(t, original.ID(), question.ID())
	assert.Equal(t, 0, question.Score())
	assert.Equal(t, 3, question.Version())
	// Reconstruction never emits events
	assert.Empty(t, question.GetUncommittedEvents())
}
