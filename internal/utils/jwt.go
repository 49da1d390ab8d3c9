package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/slopengine/slopengine/internal/domain"
)

// JWTManager issues and verifies stateless session tokens. There is no
// refresh or revocation: a token is good until its expiry instant, and
// leaking the signing secret invalidates all outstanding tokens.
type JWTManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// IssueToken signs a token asserting the subject until the configured expiry
func (j *JWTManager) IssueToken(subject string) (string, error) {
	now := j.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(j.expiry).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken validates a session token and returns its claims. It fails on
// a bad signature, a non-HMAC signing method, a malformed token, or expiry.
func (j *JWTManager) VerifyToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("invalid subject in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp in token")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat in token")
	}

	tokenClaims := &domain.TokenClaims{
		Subject: subject,
		Exp:     int64(exp),
		Iat:     int64(iat),
	}

	if tokenClaims.IsExpired(j.now()) {
		return nil, fmt.Errorf("token is expired")
	}

	return tokenClaims, nil
}

// GetExpiry returns the token lifetime in seconds
func (j *JWTManager) GetExpiry() int {
	return int(j.expiry.Seconds())
}
