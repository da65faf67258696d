package service

import (
	"errors"
	"strings"
	"time"

	"github.com/feedco/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every decode failure: bad signature, malformed
// structure, expired claims, wrong signing method.
var ErrInvalidToken = errors.New("invalid token")

// TokenCodec signs and verifies claim sets with a shared HMAC secret.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
}

func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMisconfigured
	}
	if !strings.HasPrefix(algorithm, "HS") {
		return nil, ErrMisconfigured
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, ErrMisconfigured
	}
	return &TokenCodec{secret: []byte(secret), method: method}, nil
}

// Encode signs a claim set for the user, stamping iat with the current UTC
// time and exp with iat+ttl. Every token carries a fresh jti; iat has only
// second precision, so without it two same-second issuances would sign
// byte-identical tokens.
func (c *TokenCodec) Encode(userID int64, tokenType string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := model.TokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		Scopes:    scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the claims. Any
// failure is reported as ErrInvalidToken.
func (c *TokenCodec) Decode(tokenStr string) (*model.TokenClaims, error) {
	claims := &model.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != c.method.Alg() {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
