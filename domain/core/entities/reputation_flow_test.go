package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// applyVoteDelta mirrors how the application layer turns a vote change
// into the author's reputation adjustment.
func applyVoteDelta(user *User, change VoteChange, upPoints, downPoints int, reason string) {
	user.AdjustReputation(change.ReputationDelta(upPoints, downPoints), reason)
}

// TestReputationFlow_QuestionAndAnswerLifecycle walks a full exchange:
// alice asks, bob answers, carol and dave vote, alice accepts. The final
// reputation of each participant must follow from the point table alone.
func TestReputationFlow_QuestionAndAnswerLifecycle(t *testing.T) {
	alice := newTestUser(t, "alice")
	bob := newTestUser(t, "bob")

	carol := mustUserID(t, "carol")
	dave := mustUserID(t, "dave")

	question, err := NewQuestion(alice.ID(), "How are reputation points computed?", "I keep seeing different totals after votes flip around.", nil)
	assert.NoError(t, err)

	answer, err := NewAnswer(question.ID(), bob.ID(), "Each vote carries fixed points; flips reverse the old delta first.")
	assert.NoError(t, err)

	// carol upvotes the question: alice +5
	change, err := question.Vote(carol, VoteUp)
	assert.NoError(t, err)
	applyVoteDelta(alice, change, QuestionUpvotePoints, QuestionDownvotePoints, "question_vote")

	// dave downvotes the answer: bob -2
	change, err = answer.Vote(dave, VoteDown)
	assert.NoError(t, err)
	applyVoteDelta(bob, change, AnswerUpvotePoints, AnswerDownvotePoints, "answer_vote")
	assert.Equal(t, -2, bob.Reputation())

	// dave reconsiders and flips to an upvote: bob -(-2)+10 = +12
	change, err = answer.Vote(dave, VoteUp)
	assert.NoError(t, err)
	assert.True(t, change.Flipped)
	applyVoteDelta(bob, change, AnswerUpvotePoints, AnswerDownvotePoints, "answer_vote")

	// carol also upvotes the answer: bob +10
	change, err = answer.Vote(carol, VoteUp)
	assert.NoError(t, err)
	applyVoteDelta(bob, change, AnswerUpvotePoints, AnswerDownvotePoints, "answer_vote")

	// alice accepts bob's answer: bob +15
	assert.NoError(t, answer.Accept(question.AuthorID(), alice.ID()))
	bob.AdjustReputation(AcceptedAnswerPoints, "answer_accepted")

	assert.Equal(t, 5, alice.Reputation())
	assert.Equal(t, 35, bob.Reputation())
	assert.Equal(t, 1, question.Score())
	assert.Equal(t, 2, answer.Score())
	assert.True(t, answer.IsAccepted())
}
