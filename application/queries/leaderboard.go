package queries

import (
	"errors"

	"peersphere-backend/domain/core/entities"
)

// DefaultLeaderboardSize is how many users the leaderboard shows by default
const DefaultLeaderboardSize = 10

// LeaderboardQuery represents a query for the top users by reputation
type LeaderboardQuery struct {
	Limit int
}

// Validate validates the LeaderboardQuery
func (q LeaderboardQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if q.Limit > MaxPageSize {
		return errors.New("limit exceeds the maximum page size")
	}
	return nil
}

// EffectiveLimit resolves the leaderboard size to use
func (q LeaderboardQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultLeaderboardSize
	}
	return q.Limit
}

// LeaderboardEntry is one row of the reputation leaderboard
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
}

// LeaderboardResult represents the reputation leaderboard
type LeaderboardResult struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// NewLeaderboardResult maps ranked users to the leaderboard read model.
// Users are expected sorted by reputation descending.
func NewLeaderboardResult(users []*entities.User) LeaderboardResult {
	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID().String(),
			Username:   user.Username(),
			Reputation: user.Reputation(),
		})
	}
	return LeaderboardResult{Entries: entries}
}
