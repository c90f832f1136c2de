package commands

import "fmt"

// FollowUserCommand makes one user follow another
type FollowUserCommand struct {
	FollowerID string `json:"follower_id" validate:"required"`
	FolloweeID string `json:"followee_id" validate:"required"`
}

// Validate validates the command
func (c FollowUserCommand) Validate() error {
	if c.FollowerID == "" {
		return fmt.Errorf("follower ID is required")
	}
	if c.FolloweeID == "" {
		return fmt.Errorf("followee ID is required")
	}
	if c.FollowerID == c.FolloweeID {
		return fmt.Errorf("cannot follow yourself")
	}
	return nil
}

// UnfollowUserCommand removes a follow relationship
type UnfollowUserCommand struct {
	FollowerID string `json:"follower_id" validate:"required"`
	FolloweeID string `json:"followee_id" validate:"required"`
}

// Validate validates the command
func (c UnfollowUserCommand) Validate() error {
	if c.FollowerID == "" {
		return fmt.Errorf("follower ID is required")
	}
	if c.FolloweeID == "" {
		return fmt.Errorf("followee ID is required")
	}
	return nil
}
