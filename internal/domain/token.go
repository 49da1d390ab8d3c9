package domain

import "time"

// TokenClaims represents the session token payload. The subject is the
// user's email; there is no server-side session state behind it.
type TokenClaims struct {
	Subject string `json:"sub"`
	Exp     int64  `json:"exp"`
	Iat     int64  `json:"iat"`
}

// IsExpired reports whether the token expired relative to now
func (tc TokenClaims) IsExpired(now time.Time) bool {
	return now.Unix() > tc.Exp
}
