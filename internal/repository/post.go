package repository

import (
	"context"

	"github.com/Talha-Ak/clucker/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error)
	FeedFor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// FeedFor returns the posts visible in the user's feed: those authored by the
// user or by anyone the user follows, newest first. The union is computed at
// query time; there is no materialized timeline.
func (r *postRepository) FeedFor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	followees := r.db.Model(&models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", userID)

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ? OR author_id IN (?)", userID, followees).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
