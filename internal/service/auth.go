package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/feedco/backend/internal/config"
	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/model"
)

const refreshCookieName = "refresh_token"

// Scopes routes may require. The scope strings travel inside token claims.
const (
	ScopeMe           = "me"
	ScopeUsers        = "users"
	ScopeApplications = "applications"
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

type authRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

// AuthService owns credential checks, token issuance/rotation and the
// per-request authorization decision.
type AuthService struct {
	repo             authRepository
	codec            *TokenCodec
	accessTTL        time.Duration
	refreshTTL       time.Duration
	accessTokenType  string
	refreshTokenType string
	cookieCfg        CookieConfig
}

func NewAuthService(repo authRepository, cfg config.AuthConfig) (*AuthService, error) {
	codec, err := NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: SECRET_KEY and an HMAC JWT_ALGORITHM are required", ErrMisconfigured)
	}

	accessMinutes, err := strconv.Atoi(cfg.AccessTTLMinutes)
	if err != nil || accessMinutes <= 0 {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_EXPIRE_MINUTES", ErrMisconfigured)
	}

	refreshDays, err := strconv.Atoi(cfg.RefreshTTLDays)
	if err != nil || refreshDays <= 0 {
		return nil, fmt.Errorf("%w: invalid REFRESH_TOKEN_EXPIRE_DAYS", ErrMisconfigured)
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	refreshTTL := time.Duration(refreshDays) * 24 * time.Hour

	return &AuthService{
		repo:             repo,
		codec:            codec,
		accessTTL:        time.Duration(accessMinutes) * time.Minute,
		refreshTTL:       refreshTTL,
		accessTokenType:  cfg.AccessTokenType,
		refreshTokenType: cfg.RefreshTokenType,
		cookieCfg: CookieConfig{
			Name:     refreshCookieName,
			Path:     cfg.CookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(refreshTTL.Seconds()),
		},
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// Authenticate looks the user up by exact username and verifies the
// password. Unknown user and wrong password are indistinguishable to the
// caller; neither path is timing-hardened.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueTokenSet mints an access/refresh pair carrying the same scopes and
// records the refresh token in the ledger. Saving revokes the user's prior
// active refresh token, so a login on one device logs the others out.
func (s *AuthService) IssueTokenSet(ctx context.Context, user *model.User, scopes []string) (*model.TokenSet, error) {
	if scopes == nil {
		scopes = []string{}
	}

	accessToken, err := s.codec.Encode(user.ID, s.accessTokenType, scopes, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.codec.Encode(user.ID, s.refreshTokenType, scopes, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken, time.Now().UTC().Add(s.refreshTTL)); err != nil {
		return nil, err
	}

	return &model.TokenSet{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

// Refresh validates a refresh token against both its own claims and the
// ledger row, then rotates: the presented token's scopes are carried into
// the new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenSet, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != s.refreshTokenType {
		return nil, ErrInvalidRefreshToken
	}

	record, err := s.repo.GetRefreshTokenByToken(ctx, refreshToken)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if record.Revoked || !record.ExpiresAt.After(time.Now().UTC()) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.GetUserByID(ctx, record.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.IssueTokenSet(ctx, user, claims.Scopes)
}

// Logout revokes the ledger row of the presented refresh token. A missing or
// unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.repo.RevokeRefreshToken(ctx, refreshToken)
}

// Authorize is the per-request guard: decode the bearer token, load the
// user, check the token kind, then check every required scope. Decode
// failures, a vanished user and a refresh token presented as bearer all
// return ErrInvalidCredentials; only a missing scope returns
// ErrInsufficientScope.
func (s *AuthService) Authorize(ctx context.Context, tokenStr string, requiredScopes []string) (*model.User, *model.TokenClaims, error) {
	claims, err := s.codec.Decode(tokenStr)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if claims.TokenType != s.accessTokenType {
		return nil, nil, ErrInvalidCredentials
	}

	for _, scope := range requiredScopes {
		if !claims.HasScope(scope) {
			return nil, nil, ErrInsufficientScope
		}
	}

	return user, claims, nil
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}
