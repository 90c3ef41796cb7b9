package model

import "time"

// RefreshToken is one live session. Its presence in the refresh_tokens table
// is the sole authority for "this session is still active".
type RefreshToken struct {
	ID        int       `json:"id"`
	LoginID   string    `json:"login_id"`
	Token     string    `json:"-"` // The raw token value is not exposed in JSON responses.
	ExpiresAt time.Time `json:"expires_at"`
}

// BlacklistedToken is an access token revoked at logout, before its natural
// expiry. ExpiresAt mirrors the token's own embedded expiry, so the row can be
// purged once that time has passed.
type BlacklistedToken struct {
	ID        int       `json:"id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
