package queries

import (
	"errors"
	"time"

	"peersphere-backend/domain/core/entities"
)

// GetUserQuery represents a query for a user profile
type GetUserQuery struct {
	UserID string
}

// Validate validates the GetUserQuery
func (q GetUserQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// UserView is the read model for a user profile
type UserView struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio,omitempty"`
	Reputation     int       `json:"reputation"`
	QuestionsAsked int       `json:"questionsAsked"`
	AnswersGiven   int       `json:"answersGiven"`
	FollowerCount  int       `json:"followerCount"`
	FollowingCount int       `json:"followingCount"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// NewUserView maps a user entity to its read model. The email address is
// deliberately absent: profiles are publicly readable.
func NewUserView(user *entities.User) UserView {
	return UserView{
		ID:             user.ID().String(),
		Username:       user.Username(),
		Bio:            user.Bio(),
		Reputation:     user.Reputation(),
		QuestionsAsked: user.QuestionsAsked(),
		AnswersGiven:   user.AnswersGiven(),
		FollowerCount:  user.FollowerCount(),
		FollowingCount: user.FollowingCount(),
		JoinedAt:       user.CreatedAt(),
	}
}
