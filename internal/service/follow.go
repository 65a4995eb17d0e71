package service

import (
	"context"

	"github.com/Talha-Ak/clucker/internal/repository"
)

// FollowService applies the follow graph rules on top of the edge store.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowStats summarizes a user's position in the follow graph.
type FollowStats struct {
	Followers int64 `json:"followers"`
	Followees int64 `json:"followees"`
}

// NewFollowService returns a FollowService over the given repositories.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Toggle flips the follower->followee edge. Toggling yourself is always a
// no-op: no edge is created or removed, regardless of current state. An
// unknown followee id is a NotFound outcome for the caller to handle.
// Returns whether the edge exists after the call.
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}

	return s.followRepo.Toggle(ctx, followerID, followeeID)
}

// IsFollowing reports whether the follower->followee edge exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

// Stats returns the derived follower and followee counts for a user.
func (s *FollowService) Stats(ctx context.Context, userID uint) (FollowStats, error) {
	followers, err := s.followRepo.FollowerCount(ctx, userID)
	if err != nil {
		return FollowStats{}, err
	}
	followees, err := s.followRepo.FolloweeCount(ctx, userID)
	if err != nil {
		return FollowStats{}, err
	}
	return FollowStats{Followers: followers, Followees: followees}, nil
}
