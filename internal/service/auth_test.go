package service

import (
	"context"
	"testing"
	"time"

	"github.com/feedco/backend/internal/config"
	"github.com/feedco/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type fakeAuthRepo struct {
	users  map[int64]*model.User
	ledger []*model.RefreshToken
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[int64]*model.User{}}
}

func (f *fakeAuthRepo) addUser(user *model.User) *model.User {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user
}

func (f *fakeAuthRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username && !user.Deleted {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthRepo) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if user, ok := f.users[userID]; ok && !user.Deleted {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthRepo) SaveRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	for _, record := range f.ledger {
		if record.UserID == userID && !record.Revoked {
			record.Revoked = true
		}
	}
	f.nextID++
	f.ledger = append(f.ledger, &model.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	return nil
}

func (f *fakeAuthRepo) GetRefreshTokenByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	for _, record := range f.ledger {
		if record.Token == token {
			return record, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthRepo) RevokeRefreshToken(_ context.Context, token string) error {
	for _, record := range f.ledger {
		if record.Token == token {
			record.Revoked = true
		}
	}
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret",
		JWTAlgorithm:     "HS256",
		AccessTTLMinutes: "30",
		RefreshTTLDays:   "30",
		AccessTokenType:  "access",
		RefreshTokenType: "refresh",
		CookiePath:       "/",
		CookieSecure:     "false",
	}
}

func newTestAuthService(t *testing.T, repo *fakeAuthRepo) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, testAuthConfig())
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, repo *fakeAuthRepo, username, password string) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return repo.addUser(&model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		AccountType:  model.AccountTypeTester,
	})
}

func TestNewAuthServiceValidatesConfig(t *testing.T) {
	repo := newFakeAuthRepo()

	cfg := testAuthConfig()
	cfg.JWTSecret = ""
	_, err := NewAuthService(repo, cfg)
	require.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.AccessTTLMinutes = "soon"
	_, err = NewAuthService(repo, cfg)
	require.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.RefreshTTLDays = "-1"
	_, err = NewAuthService(repo, cfg)
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	user, err := svc.Authenticate(context.Background(), "alice", "correct")
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "correct")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenSetPersistsRefreshToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, []string{"me"})
	require.NoError(t, err)
	require.NotEmpty(t, set.AccessToken)
	require.NotEmpty(t, set.RefreshToken)
	require.Equal(t, "Bearer", set.TokenType)

	record, err := repo.GetRefreshTokenByToken(context.Background(), set.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, alice.ID, record.UserID)
	require.False(t, record.Revoked)
}

func TestIssueTokenSetRevokesPriorRefreshToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	first, err := svc.IssueTokenSet(context.Background(), alice, []string{"me"})
	require.NoError(t, err)
	second, err := svc.IssueTokenSet(context.Background(), alice, []string{"me"})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	rotated, err := svc.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
}

func TestRefreshCarriesScopes(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, []string{"me", "users"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), set.RefreshToken)
	require.NoError(t, err)

	_, claims, err := svc.Authorize(context.Background(), rotated.AccessToken, []string{"me", "users"})
	require.NoError(t, err)
	require.Equal(t, []string{"me", "users"}, claims.Scopes)
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	_, err := svc.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// An access token is never accepted on the refresh path.
	set, err := svc.IssueTokenSet(context.Background(), alice, nil)
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), set.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsLedgerExpiry(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, nil)
	require.NoError(t, err)

	// The claim-level exp is still in the future; the ledger row alone
	// decides the token is stale.
	record, err := repo.GetRefreshTokenByToken(context.Background(), set.RefreshToken)
	require.NoError(t, err)
	record.ExpiresAt = time.Now().UTC().Add(-time.Hour)

	_, err = svc.Refresh(context.Background(), set.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthorize(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, []string{"me"})
	require.NoError(t, err)

	user, claims, err := svc.Authorize(context.Background(), set.AccessToken, []string{"me"})
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)
	require.Equal(t, "access", claims.TokenType)

	// Missing scope is reported separately from invalid credentials.
	_, _, err = svc.Authorize(context.Background(), set.AccessToken, []string{"users"})
	require.ErrorIs(t, err, ErrInsufficientScope)

	// A refresh token presented as bearer is invalid even though its
	// signature checks out.
	_, _, err = svc.Authorize(context.Background(), set.RefreshToken, nil)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authorize(context.Background(), "garbage", nil)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorizeRejectsVanishedUser(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, []string{"me"})
	require.NoError(t, err)

	alice.Deleted = true

	_, _, err = svc.Authorize(context.Background(), set.AccessToken, []string{"me"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokes(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)
	alice := seedUser(t, repo, "alice", "correct")

	set, err := svc.IssueTokenSet(context.Background(), alice, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), set.RefreshToken))

	_, err = svc.Refresh(context.Background(), set.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Missing token is a no-op.
	require.NoError(t, svc.Logout(context.Background(), ""))
}
