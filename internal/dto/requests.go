package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        UserInfo `json:"user"`
}

// UserInfo represents user information in response
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserResponse represents a user response
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// GenerateVideoRequest represents a video generation request
type GenerateVideoRequest struct {
	Prompt     string `json:"prompt" binding:"required"`
	Duration   int    `json:"duration"`
	Resolution string `json:"resolution"`
	Style      string `json:"style"`
	FPS        int    `json:"fps"`
}

// GenerateVideoResponse represents the result of a video generation run
type GenerateVideoResponse struct {
	VideoID   string `json:"video_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// VideoResponse represents stored video metadata
type VideoResponse struct {
	VideoID    string  `json:"video_id"`
	Prompt     string  `json:"prompt"`
	Duration   int     `json:"duration"`
	Resolution string  `json:"resolution"`
	Style      *string `json:"style"`
	FPS        int     `json:"fps"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
