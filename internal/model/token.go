package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set shared by access and refresh tokens. TokenType
// distinguishes the two kinds; a token of the wrong kind is rejected even
// when its signature is valid.
type TokenClaims struct {
	UserID    int64    `json:"user_id"`
	TokenType string   `json:"token_type"`
	Scopes    []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScope reports whether the claim set grants the named scope.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// RefreshToken is one row of the refresh-token ledger. Rows are revoked when
// superseded, never deleted.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// TokenSet is the login/refresh response payload.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
