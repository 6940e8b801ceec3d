package model

import "time"

// Token is the stored half of a refresh token. Only the hash is persisted.
type Token struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair is what a successful sign-in hands back to the client.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
