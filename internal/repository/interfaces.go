package repository

import (
	"context"

	"github.com/slopengine/slopengine/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// VideoRepository defines methods for generated video metadata
type VideoRepository interface {
	Create(ctx context.Context, video *domain.GeneratedVideo) error
	GetByVideoID(ctx context.Context, videoID string) (*domain.GeneratedVideo, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.GeneratedVideo, error)
}
