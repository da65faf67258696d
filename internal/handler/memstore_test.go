package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/feedco/backend/internal/config"
	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for db.Postgres satisfying every
// repository interface the services consume.
type memStore struct {
	users    map[int64]*model.User
	ledger   []*model.RefreshToken
	apps     map[int64]*model.Application
	ratings  map[int64]*model.Rating
	reviews  map[int64]*model.Review
	comments map[int64]*model.Comment
	rvotes   map[int64]*model.Vote
	cvotes   map[int64]*model.Vote
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*model.User{},
		apps:     map[int64]*model.Application{},
		ratings:  map[int64]*model.Rating{},
		reviews:  map[int64]*model.Review{},
		comments: map[int64]*model.Comment{},
		rvotes:   map[int64]*model.Vote{},
		cvotes:   map[int64]*model.Vote{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range m.users {
		if user.Username == username && !user.Deleted {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if user, ok := m.users[userID]; ok && !user.Deleted {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	user.ID = m.id()
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) UserExists(_ context.Context, username, email string) (bool, error) {
	for _, user := range m.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SearchUsers(_ context.Context, search model.UserSearch) ([]*model.User, error) {
	out := []*model.User{}
	for _, user := range m.users {
		if user.Deleted {
			continue
		}
		if search.Username != "" && !strings.Contains(user.Username, search.Username) {
			continue
		}
		if search.Email != "" && !strings.Contains(user.Email, search.Email) {
			continue
		}
		if search.Description != "" && !strings.Contains(user.Description, search.Description) {
			continue
		}
		if search.AccountType != "" && string(user.AccountType) != search.AccountType {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (m *memStore) UpdateUser(_ context.Context, user *model.User) (*model.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) SoftDeleteUser(_ context.Context, userID int64) error {
	if user, ok := m.users[userID]; ok {
		user.Deleted = true
	}
	return nil
}

func (m *memStore) SaveRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	for _, record := range m.ledger {
		if record.UserID == userID && !record.Revoked {
			record.Revoked = true
		}
	}
	m.ledger = append(m.ledger, &model.RefreshToken{
		ID:        m.id(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	return nil
}

func (m *memStore) GetRefreshTokenByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	for _, record := range m.ledger {
		if record.Token == token {
			return record, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) RevokeRefreshToken(_ context.Context, token string) error {
	for _, record := range m.ledger {
		if record.Token == token {
			record.Revoked = true
		}
	}
	return nil
}

func (m *memStore) CreateApplication(_ context.Context, app *model.Application) (*model.Application, error) {
	app.ID = m.id()
	app.CreatedAt = time.Now().UTC()
	m.apps[app.ID] = app
	return app, nil
}

func (m *memStore) GetApplicationByID(_ context.Context, appID int64) (*model.Application, error) {
	if app, ok := m.apps[appID]; ok && !app.Deleted {
		return app, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) SearchApplications(_ context.Context, search model.ApplicationSearch) ([]*model.Application, error) {
	out := []*model.Application{}
	for _, app := range m.apps {
		if app.Deleted {
			continue
		}
		if search.Name != "" && !strings.Contains(app.Name, search.Name) {
			continue
		}
		if search.Description != "" && !strings.Contains(app.Description, search.Description) {
			continue
		}
		if search.UserID != 0 && app.UserID != search.UserID {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (m *memStore) UpdateApplication(_ context.Context, app *model.Application) (*model.Application, error) {
	if _, ok := m.apps[app.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	m.apps[app.ID] = app
	return app, nil
}

func (m *memStore) SoftDeleteApplication(_ context.Context, appID int64) error {
	if app, ok := m.apps[appID]; ok {
		app.Deleted = true
	}
	return nil
}

func (m *memStore) UpsertRating(_ context.Context, rating *model.Rating) (*model.Rating, error) {
	for _, existing := range m.ratings {
		if existing.ApplicationID == rating.ApplicationID && existing.UserID == rating.UserID {
			existing.Grade = rating.Grade
			return existing, nil
		}
	}
	rating.ID = m.id()
	m.ratings[rating.ID] = rating
	return rating, nil
}

func (m *memStore) GetRatingSummary(_ context.Context, appID int64) (int64, float64, error) {
	var count int64
	var sum int64
	for _, rating := range m.ratings {
		if rating.ApplicationID == appID {
			count++
			sum += int64(rating.Grade)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}

func (m *memStore) CreateReview(_ context.Context, review *model.Review) (*model.Review, error) {
	review.ID = m.id()
	review.CreatedAt = time.Now().UTC()
	m.reviews[review.ID] = review
	return review, nil
}

func (m *memStore) GetReviewByID(_ context.Context, reviewID int64) (*model.Review, error) {
	if review, ok := m.reviews[reviewID]; ok {
		return review, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) ListReviewsByApplication(_ context.Context, appID int64) ([]*model.Review, error) {
	out := []*model.Review{}
	for _, review := range m.reviews {
		if review.ApplicationID == appID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (m *memStore) UpdateReview(_ context.Context, review *model.Review) (*model.Review, error) {
	if _, ok := m.reviews[review.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	m.reviews[review.ID] = review
	return review, nil
}

func (m *memStore) UpsertReviewVote(_ context.Context, vote *model.Vote) (*model.Vote, error) {
	for _, existing := range m.rvotes {
		if existing.TargetID == vote.TargetID && existing.UserID == vote.UserID {
			existing.VoteType = vote.VoteType
			return existing, nil
		}
	}
	vote.ID = m.id()
	m.rvotes[vote.ID] = vote
	return vote, nil
}

func (m *memStore) DeleteReviewVote(_ context.Context, reviewID, userID int64) (bool, error) {
	for id, vote := range m.rvotes {
		if vote.TargetID == reviewID && vote.UserID == userID {
			delete(m.rvotes, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetReviewVoteCounts(_ context.Context, reviewID int64) (model.VoteCounts, error) {
	return countVotes(m.rvotes, reviewID), nil
}

func (m *memStore) CreateComment(_ context.Context, comment *model.Comment) (*model.Comment, error) {
	comment.ID = m.id()
	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *memStore) GetCommentByID(_ context.Context, commentID int64) (*model.Comment, error) {
	if comment, ok := m.comments[commentID]; ok && !comment.Deleted {
		return comment, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) ListCommentsByReview(_ context.Context, reviewID int64) ([]*model.Comment, error) {
	out := []*model.Comment{}
	for _, comment := range m.comments {
		if comment.ReviewID == reviewID && !comment.Deleted {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (m *memStore) UpdateComment(_ context.Context, comment *model.Comment) (*model.Comment, error) {
	if _, ok := m.comments[comment.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *memStore) SoftDeleteComment(_ context.Context, commentID int64) error {
	if comment, ok := m.comments[commentID]; ok {
		comment.Deleted = true
	}
	return nil
}

func (m *memStore) UpsertCommentVote(_ context.Context, vote *model.Vote) (*model.Vote, error) {
	for _, existing := range m.cvotes {
		if existing.TargetID == vote.TargetID && existing.UserID == vote.UserID {
			existing.VoteType = vote.VoteType
			return existing, nil
		}
	}
	vote.ID = m.id()
	m.cvotes[vote.ID] = vote
	return vote, nil
}

func (m *memStore) DeleteCommentVote(_ context.Context, commentID, userID int64) (bool, error) {
	for id, vote := range m.cvotes {
		if vote.TargetID == commentID && vote.UserID == userID {
			delete(m.cvotes, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetCommentVoteCounts(_ context.Context, commentID int64) (model.VoteCounts, error) {
	return countVotes(m.cvotes, commentID), nil
}

func countVotes(votes map[int64]*model.Vote, targetID int64) model.VoteCounts {
	var counts model.VoteCounts
	for _, vote := range votes {
		if vote.TargetID != targetID {
			continue
		}
		if vote.VoteType {
			counts.Positive++
		} else {
			counts.Negative++
		}
	}
	return counts
}

type testEnv struct {
	router *gin.Engine
	store  *memStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	authSvc, err := service.NewAuthService(store, config.AuthConfig{
		JWTSecret:        "test-secret",
		JWTAlgorithm:     "HS256",
		AccessTTLMinutes: "30",
		RefreshTTLDays:   "30",
		AccessTokenType:  "access",
		RefreshTokenType: "refresh",
		CookiePath:       "/",
		CookieSecure:     "false",
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	router := NewRouter(Services{
		Auth:         authSvc,
		Users:        service.NewUserService(store),
		Applications: service.NewApplicationService(store),
		Reviews:      service.NewReviewService(store),
		Comments:     service.NewCommentService(store),
	}, config.HTTPConfig{}, log)

	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username, accountType string) {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"secret","account_type":"` + accountType + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := e.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// login performs the form-encoded password grant and returns the decoded
// token set plus the refresh cookie.
func (e *testEnv) login(t *testing.T, username, scope string) (model.TokenSet, *http.Cookie) {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", "secret")
	if scope != "" {
		form.Set("scope", scope)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := e.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var set model.TokenSet
	require.NoError(t, jsonDecode(w.Body.Bytes(), &set))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "refresh_token cookie not set")
	return set, cookie
}

func (e *testEnv) authedJSON(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.do(req)
}

func jsonDecode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
