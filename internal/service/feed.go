package service

import (
	"context"

	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/repository"
	"github.com/Talha-Ak/clucker/internal/validation"
)

// FeedService composes a user's feed and accepts new posts.
type FeedService struct {
	postRepo repository.PostRepository
}

// NewFeedService returns a FeedService over the given post repository.
func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// Compose returns the posts visible to the user: their own and their
// followees', newest first. The feed is computed fresh on every call.
func (s *FeedService) Compose(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.FeedFor(ctx, userID, limit, offset)
}

// CreatePost validates and stores a new post for the author. The text limit
// is the only field rule; authentication is the caller's responsibility.
func (s *FeedService) CreatePost(ctx context.Context, authorID uint, text string) (*models.Post, error) {
	if err := validation.ValidatePostText(text); err != nil {
		verrs := models.NewValidationErrors()
		verrs.Add("text", err.Error())
		return nil, verrs
	}

	post := &models.Post{AuthorID: authorID, Text: text}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
