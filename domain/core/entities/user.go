package entities

import (
	"time"

	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
	pkgerrors "peersphere-backend/pkg/errors"
)

// User is a platform member. Reputation is earned through votes on the
// user's questions and answers and through accepted answers; it can go
// negative and is never clamped.
type User struct {
	// Private fields ensure encapsulation
	id             valueobjects.UserID
	username       string
	email          string
	bio            string
	reputation     int
	questionsAsked int
	answersGiven   int
	following      map[string]struct{}
	followers      map[string]struct{}
	createdAt      time.Time
	updatedAt      time.Time
	version        int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewUser creates a new user profile
func NewUser(id valueobjects.UserID, username, email string) (*User, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("user ID cannot be empty")
	}

	if username == "" {
		return nil, pkgerrors.NewValidationError("username cannot be empty")
	}

	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	now := time.Now()
	user := &User{
		id:        id,
		username:  username,
		email:     email,
		following: make(map[string]struct{}),
		followers: make(map[string]struct{}),
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	return user, nil
}

// ReconstructUser reconstructs a user from repository data with preserved timestamps
func ReconstructUser(
	id valueobjects.UserID,
	username, email, bio string,
	reputation, questionsAsked, answersGiven int,
	following, followers []string,
	createdAt, updatedAt time.Time,
	version int,
) (*User, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("user ID cannot be empty")
	}

	if username == "" {
		return nil, pkgerrors.NewValidationError("username cannot be empty")
	}

	user := &User{
		id:             id,
		username:       username,
		email:          email,
		bio:            bio,
		reputation:     reputation,
		questionsAsked: questionsAsked,
		answersGiven:   answersGiven,
		following:      make(map[string]struct{}, len(following)),
		followers:      make(map[string]struct{}, len(followers)),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
		events:         []events.DomainEvent{},
	}

	for _, id := range following {
		user.following[id] = struct{}{}
	}
	for _, id := range followers {
		user.followers[id] = struct{}{}
	}

	return user, nil
}

// ID returns the user's unique identifier
func (u *User) ID() valueobjects.UserID {
	return u.id
}

// Username returns the display name
func (u *User) Username() string {
	return u.username
}

// Email returns the user's email address
func (u *User) Email() string {
	return u.email
}

// Bio returns the user's profile text
func (u *User) Bio() string {
	return u.bio
}

// Reputation returns the current reputation score
func (u *User) Reputation() int {
	return u.reputation
}

// QuestionsAsked returns how many questions the user has posted
func (u *User) QuestionsAsked() int {
	return u.questionsAsked
}

// AnswersGiven returns how many answers the user has posted
func (u *User) AnswersGiven() int {
	return u.answersGiven
}

// Version returns the user's version for optimistic locking
func (u *User) Version() int {
	return u.version
}

// UpdateProfile updates the mutable profile fields
func (u *User) UpdateProfile(username, bio string) error {
	if username == "" {
		return pkgerrors.NewValidationError("username cannot be empty")
	}

	u.username = username
	u.bio = bio
	u.updatedAt = time.Now()
	u.version++

	return nil
}

// AdjustReputation applies a signed delta to the reputation score.
// Reputation may go negative.
func (u *User) AdjustReputation(delta int, reason string) {
	if delta == 0 {
		return
	}

	u.reputation += delta
	u.updatedAt = time.Now()
	u.version++

	u.addEvent(events.NewReputationAdjusted(u.id, delta, reason, u.updatedAt))
}

// RecordQuestionAsked bumps the question counter
func (u *User) RecordQuestionAsked() {
	u.questionsAsked++
	u.updatedAt = time.Now()
}

// RecordAnswerGiven bumps the answer counter
func (u *User) RecordAnswerGiven() {
	u.answersGiven++
	u.updatedAt = time.Now()
}

// Follow records that this user follows the target. Following the same
// user twice and following yourself are both rejected.
func (u *User) Follow(target valueobjects.UserID) error {
	if target.IsZero() {
		return pkgerrors.NewValidationError("target user ID cannot be empty")
	}

	if u.id.Equals(target) {
		return pkgerrors.NewValidationError("cannot follow yourself")
	}

	if _, ok := u.following[target.String()]; ok {
		return pkgerrors.NewAlreadyFollowingError()
	}

	u.following[target.String()] = struct{}{}
	u.updatedAt = time.Now()

	u.addEvent(events.NewUserFollowed(u.id, target, u.updatedAt))

	return nil
}

// Unfollow removes the target from this user's following set
func (u *User) Unfollow(target valueobjects.UserID) error {
	if _, ok := u.following[target.String()]; !ok {
		return pkgerrors.NewNotFoundError("follow relationship")
	}

	delete(u.following, target.String())
	u.updatedAt = time.Now()

	return nil
}

// IsFollowing reports whether this user follows the target
func (u *User) IsFollowing(target valueobjects.UserID) bool {
	_, ok := u.following[target.String()]
	return ok
}

// Following returns the IDs this user follows, sorted for determinism
func (u *User) Following() []string {
	return sortedMembers(u.following)
}

// Followers returns the IDs following this user, sorted for determinism
func (u *User) Followers() []string {
	return sortedMembers(u.followers)
}

// FollowerCount returns how many users follow this user
func (u *User) FollowerCount() int {
	return len(u.followers)
}

// FollowingCount returns how many users this user follows
func (u *User) FollowingCount() int {
	return len(u.following)
}

// CreatedAt returns when the user joined
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (u *User) GetUncommittedEvents() []events.DomainEvent {
	return u.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (u *User) MarkEventsAsCommitted() {
	u.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (u *User) addEvent(event events.DomainEvent) {
	u.events = append(u.events, event)
}
