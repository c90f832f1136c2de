package entities

import (
	"sort"

	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// VoteDirection identifies which membership set a vote lands in
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Reputation point table. These values are load-bearing: clients and the
// leaderboard assume them, so they must not drift.
const (
	QuestionUpvotePoints   = 5
	QuestionDownvotePoints = -2
	AnswerUpvotePoints     = 10
	AnswerDownvotePoints   = -2
	AcceptedAnswerPoints   = 15
)

// VoteLedger maintains the per-entity upvote/downvote membership sets.
// Invariant: a user appears in at most one of the two sets at any time.
type VoteLedger struct {
	upvotes   map[string]struct{}
	downvotes map[string]struct{}
}

// NewVoteLedger creates an empty ledger
func NewVoteLedger() *VoteLedger {
	return &VoteLedger{
		upvotes:   make(map[string]struct{}),
		downvotes: make(map[string]struct{}),
	}
}

// ReconstructVoteLedger rebuilds a ledger from persisted membership sets.
// A user id present in both inputs is kept in upvotes only, restoring the
// invariant for data written before mutual exclusion was enforced.
func ReconstructVoteLedger(upvotes, downvotes []string) *VoteLedger {
	ledger := NewVoteLedger()
	for _, id := range upvotes {
		ledger.upvotes[id] = struct{}{}
	}
	for _, id := range downvotes {
		if _, ok := ledger.upvotes[id]; ok {
			continue
		}
		ledger.downvotes[id] = struct{}{}
	}
	return ledger
}

// VoteChange describes the transition produced by a successful vote
type VoteChange struct {
	Voter     valueobjects.UserID
	Direction VoteDirection
	// Flipped is true when the voter previously held the opposite vote
	Flipped bool
}

// ReputationDelta computes the signed reputation adjustment for the
// entity's author given the entity's point values. A flip reverses the
// previously applied delta before applying the new one, so reputation
// stays a pure function of the current vote sets.
func (c VoteChange) ReputationDelta(upPoints, downPoints int) int {
	delta := downPoints
	reversed := upPoints
	if c.Direction == VoteUp {
		delta = upPoints
		reversed = downPoints
	}
	if c.Flipped {
		delta -= reversed
	}
	return delta
}

// Cast records a vote by user in the given direction.
// A repeated same-direction vote is rejected with an AlreadyVoted error
// and leaves the ledger untouched; an opposite-direction vote is moved
// (vote flip).
func (l *VoteLedger) Cast(user valueobjects.UserID, direction VoteDirection, entity string) (VoteChange, error) {
	if user.IsZero() {
		return VoteChange{}, pkgerrors.NewUnauthorizedError("voting requires an authenticated user")
	}

	same, opposite := l.upvotes, l.downvotes
	if direction == VoteDown {
		same, opposite = l.downvotes, l.upvotes
	}

	if _, ok := same[user.String()]; ok {
		return VoteChange{}, pkgerrors.NewAlreadyVotedError(entity)
	}

	_, flipped := opposite[user.String()]
	if flipped {
		delete(opposite, user.String())
	}
	same[user.String()] = struct{}{}

	return VoteChange{Voter: user, Direction: direction, Flipped: flipped}, nil
}

// HasUpvoted reports whether user is in the upvote set
func (l *VoteLedger) HasUpvoted(user valueobjects.UserID) bool {
	_, ok := l.upvotes[user.String()]
	return ok
}

// HasDownvoted reports whether user is in the downvote set
func (l *VoteLedger) HasDownvoted(user valueobjects.UserID) bool {
	_, ok := l.downvotes[user.String()]
	return ok
}

// Upvotes returns the upvoter ids, sorted for deterministic output
func (l *VoteLedger) Upvotes() []string {
	return sortedMembers(l.upvotes)
}

// Downvotes returns the downvoter ids, sorted for deterministic output
func (l *VoteLedger) Downvotes() []string {
	return sortedMembers(l.downvotes)
}

// UpvoteCount returns the number of upvotes
func (l *VoteLedger) UpvoteCount() int {
	return len(l.upvotes)
}

// DownvoteCount returns the number of downvotes
func (l *VoteLedger) DownvoteCount() int {
	return len(l.downvotes)
}

// Score returns upvotes minus downvotes
func (l *VoteLedger) Score() int {
	return len(l.upvotes) - len(l.downvotes)
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for id := range set {
		members = append(members, id)
	}
	sort.Strings(members)
	return members
}
