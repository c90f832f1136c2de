package queries

import (
	"errors"

	"peersphere-backend/domain/core/entities"
)

// GetUserStatsQuery represents a query for a user's activity counters
type GetUserStatsQuery struct {
	UserID string
}

// Validate validates the GetUserStatsQuery
func (q GetUserStatsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// UserStatsResult represents a user's activity counters
type UserStatsResult struct {
	UserID         string `json:"userId"`
	Reputation     int    `json:"reputation"`
	QuestionsAsked int    `json:"questionsAsked"`
	AnswersGiven   int    `json:"answersGiven"`
	Followers      int    `json:"followers"`
	Following      int    `json:"following"`
}

// NewUserStatsResult maps a user entity to its stats read model
func NewUserStatsResult(user *entities.User) UserStatsResult {
	return UserStatsResult{
		UserID:         user.ID().String(),
		Reputation:     user.Reputation(),
		QuestionsAsked: user.QuestionsAsked(),
		AnswersGiven:   user.AnswersGiven(),
		Followers:      user.FollowerCount(),
		Following:      user.FollowingCount(),
	}
}
