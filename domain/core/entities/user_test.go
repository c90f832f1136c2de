package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
	pkgerrors "peersphere-backend/pkg/errors"
)

func newTestUser(t *testing.T, id string) *User {
	t.Helper()
	user, err := NewUser(mustUserID(t, id), "testuser", "test@example.com")
	assert.NoError(t, err)
	return user
}

func TestNewUser_Validation(t *testing.T) {
	id := mustUserID(t, "user-1")

	_, err := NewUser(valueobjects.UserID{}, "name", "mail@example.com")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewUser(id, "", "mail@example.com")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewUser(id, "name", "")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestUser_AdjustReputation(t *testing.T) {
	user := newTestUser(t, "user-1")

	user.AdjustReputation(10, "answer_upvote")
	user.AdjustReputation(-2, "question_downvote")

	assert.Equal(t, 8, user.Reputation())

	uncommitted := user.GetUncommittedEvents()
	assert.Len(t, uncommitted, 2)
	adjusted, ok := uncommitted[0].(events.ReputationAdjusted)
	assert.True(t, ok)
	assert.Equal(t, 10, adjusted.Delta)
	assert.Equal(t, "answer_upvote", adjusted.Reason)
}

func TestUser_AdjustReputation_CanGoNegative(t *testing.T) {
	user := newTestUser(t, "user-1")

	user.AdjustReputation(-2, "question_downvote")
	user.AdjustReputation(-2, "question_downvote")

	assert.Equal(t, -4, user.Reputation())
}

func TestUser_AdjustReputation_ZeroDeltaIsNoop(t *testing.T) {
	user := newTestUser(t, "user-1")
	version := user.Version()

	user.AdjustReputation(0, "noop")

	assert.Equal(t, version, user.Version())
	assert.Empty(t, user.GetUncommittedEvents())
}

func TestUser_Follow(t *testing.T) {
	user := newTestUser(t, "user-1")
	target := mustUserID(t, "user-2")

	err := user.Follow(target)

	assert.NoError(t, err)
	assert.True(t, user.IsFollowing(target))
	assert.Equal(t, 1, user.FollowingCount())
	assert.Len(t, user.GetUncommittedEvents(), 1)
}

func TestUser_Follow_SelfRejected(t *testing.T) {
	user := newTestUser(t, "user-1")

	err := user.Follow(mustUserID(t, "user-1"))

	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, 0, user.FollowingCount())
}

func TestUser_Follow_DuplicateRejected(t *testing.T) {
	user := newTestUser(t, "user-1")
	target := mustUserID(t, "user-2")

	assert.NoError(t, user.Follow(target))
	err := user.Follow(target)

	assert.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeAlreadyFollowing))
	assert.Equal(t, 1, user.FollowingCount())
}

func TestUser_Unfollow(t *testing.T) {
	user := newTestUser(t, "user-1")
	target := mustUserID(t, "user-2")
	assert.NoError(t, user.Follow(target))

	err := user.Unfollow(target)

	assert.NoError(t, err)
	assert.False(t, user.IsFollowing(target))
}

func TestUser_Unfollow_MissingRelationship(t *testing.T) {
	user := newTestUser(t, "user-1")

	err := user.Unfollow(mustUserID(t, "user-2"))

	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestReconstructUser_PreservesState(t *testing.T) {
	user := newTestUser(t, "user-1")

	restored, err := ReconstructUser(
		user.ID(), "testuser", "test@example.com", "a bio",
		42, 3, 7,
		[]string{"user-2"}, []string{"user-3", "user-4"},
		user.CreatedAt(), user.UpdatedAt(), 5,
	)

	assert.NoError(t, err)
	assert.Equal(t, 42, restored.Reputation())
	assert.Equal(t, 3, restored.QuestionsAsked())
	assert.Equal(t, 7, restored.AnswersGiven())
	assert.True(t, restored.IsFollowing(mustUserID(t, "user-2")))
	assert.Equal(t, 2, restored.FollowerCount())
	assert.Empty(t, restored.GetUncommittedEvents())
}
