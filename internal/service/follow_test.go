package service

import (
	"context"
	"testing"

	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Toggle Is A Noop", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)

		svc := NewFollowService(followRepo, userRepo)
		following, err := svc.Toggle(ctx, 1, 1)
		require.NoError(t, err)
		assert.False(t, following)

		// No lookup, no edge write.
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		followRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Followee Is NotFound", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("User", 99))

		svc := NewFollowService(followRepo, userRepo)
		_, err := svc.Toggle(ctx, 1, 99)
		assert.True(t, models.IsNotFound(err))
		followRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delegates To Edge Store", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		followRepo.On("Toggle", mock.Anything, uint(1), uint(2)).Return(true, nil)

		svc := NewFollowService(followRepo, userRepo)
		following, err := svc.Toggle(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, following)
		followRepo.AssertExpectations(t)
	})
}

func TestFollowService_IsFollowing_Self(t *testing.T) {
	svc := NewFollowService(new(MockFollowRepository), new(MockUserRepository))

	following, err := svc.IsFollowing(context.Background(), 7, 7)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowService_Stats(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("FollowerCount", mock.Anything, uint(1)).Return(int64(3), nil)
	followRepo.On("FolloweeCount", mock.Anything, uint(1)).Return(int64(5), nil)

	svc := NewFollowService(followRepo, new(MockUserRepository))
	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, FollowStats{Followers: 3, Followees: 5}, stats)
}
