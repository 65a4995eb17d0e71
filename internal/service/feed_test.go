package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Talha-Ak/clucker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedService_Compose(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("FeedFor", mock.Anything, uint(1), 25, 0).Return([]models.Post{
		{ID: 2, AuthorID: 1, Text: "second"},
		{ID: 1, AuthorID: 1, Text: "first"},
	}, nil)

	svc := NewFeedService(postRepo)
	posts, err := svc.Compose(context.Background(), 1, 25, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	postRepo.AssertExpectations(t)
}

func TestFeedService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := NewFeedService(postRepo)
		post, err := svc.CreatePost(ctx, 1, "Hello, world!")
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.AuthorID)
		assert.Equal(t, "Hello, world!", post.Text)
	})

	t.Run("Empty Text Rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo)

		_, err := svc.CreatePost(ctx, 1, "   ")
		var verrs *models.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields, "text")
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Over Limit Rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo)

		_, err := svc.CreatePost(ctx, 1, strings.Repeat("a", models.MaxPostLength+1))
		var verrs *models.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields, "text")
	})

	t.Run("Exactly At Limit Accepted", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := NewFeedService(postRepo)
		_, err := svc.CreatePost(ctx, 1, strings.Repeat("a", models.MaxPostLength))
		assert.NoError(t, err)
	})
}
