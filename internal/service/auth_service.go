package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/dto"
	"github.com/slopengine/slopengine/internal/repository"
	"github.com/slopengine/slopengine/internal/utils"
)

// dummyPasswordHash is compared against when login hits an unknown email,
// so both unauthorized paths cost one bcrypt verification (cost 12).
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

// Register registers a new user with local credentials
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidRequest)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long: %w", ErrInvalidRequest)
	}

	// Pre-read for a friendly error. The unique index on users.email is the
	// real enforcement point; a race lost there is remapped below.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("email %s is taken: %w", email, ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("email %s is taken: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueAuthResponse(user)
}

// Login authenticates a user with local credentials
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a bcrypt comparison so an unknown email is not
			// distinguishable from a wrong password by timing
			utils.CheckPasswordHash(req.Password, dummyPasswordHash)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrUnauthorized
	}

	return s.issueAuthResponse(user)
}

// CurrentUser resolves a session token to the user it asserts. Verification
// failure and an unresolvable subject both surface as ErrUnauthorized.
func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *authService) issueAuthResponse(user *domain.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.IssueToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtManager.GetExpiry(),
		User: dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}
