package service

import (
	"context"

	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/dto"
)

// AuthService defines methods for local credential authentication
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// OAuthService defines methods for provider-based authentication
type OAuthService interface {
	AuthorizationURL(ctx context.Context, providerName string) (string, error)
	HandleCallback(ctx context.Context, providerName, code, state string) (string, error)
}

// VideoService defines methods for the placeholder video generation backend
type VideoService interface {
	Generate(ctx context.Context, userID int64, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error)
	GetVideo(ctx context.Context, videoID string) (*domain.GeneratedVideo, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.GeneratedVideo, error)
}
