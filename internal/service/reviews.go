package service

import (
	"context"

	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/model"
)

type reviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	GetReviewByID(ctx context.Context, reviewID int64) (*model.Review, error)
	ListReviewsByApplication(ctx context.Context, appID int64) ([]*model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	UpsertReviewVote(ctx context.Context, vote *model.Vote) (*model.Vote, error)
	DeleteReviewVote(ctx context.Context, reviewID, userID int64) (bool, error)
	GetReviewVoteCounts(ctx context.Context, reviewID int64) (model.VoteCounts, error)
	GetApplicationByID(ctx context.Context, appID int64) (*model.Application, error)
}

type ReviewService struct {
	repo reviewRepository
}

func NewReviewService(repo reviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) Create(ctx context.Context, author *model.User, appID int64, req model.ReviewCreateRequest) (*model.Review, error) {
	if _, err := s.application(ctx, appID); err != nil {
		return nil, err
	}
	return s.repo.CreateReview(ctx, &model.Review{
		ApplicationID: appID,
		UserID:        author.ID,
		Title:         req.Title,
		Body:          req.Body,
	})
}

func (s *ReviewService) GetByID(ctx context.Context, reviewID int64) (*model.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

// ListByApplication returns an application's reviews. When the startup chose
// hide_reviews, only the owner may read them.
func (s *ReviewService) ListByApplication(ctx context.Context, caller *model.User, appID int64) ([]*model.Review, error) {
	app, err := s.application(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.HideReviews && app.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return s.repo.ListReviewsByApplication(ctx, appID)
}

func (s *ReviewService) Update(ctx context.Context, caller *model.User, reviewID int64, req model.ReviewUpdateRequest) (*model.Review, error) {
	review, err := s.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != caller.ID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrInvalidInput
		}
		review.Title = *req.Title
	}
	if req.Body != nil {
		if *req.Body == "" || len(*req.Body) > 1000 {
			return nil, ErrInvalidInput
		}
		review.Body = *req.Body
	}

	return s.repo.UpdateReview(ctx, review)
}

func (s *ReviewService) Vote(ctx context.Context, caller *model.User, reviewID int64, voteType bool) (*model.Vote, error) {
	if _, err := s.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.repo.UpsertReviewVote(ctx, &model.Vote{
		TargetID: reviewID,
		UserID:   caller.ID,
		VoteType: voteType,
	})
}

// Counts returns the live vote tallies of a review.
func (s *ReviewService) Counts(ctx context.Context, reviewID int64) (model.VoteCounts, error) {
	return s.repo.GetReviewVoteCounts(ctx, reviewID)
}

func (s *ReviewService) Unvote(ctx context.Context, caller *model.User, reviewID int64) error {
	if _, err := s.GetByID(ctx, reviewID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteReviewVote(ctx, reviewID, caller.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewService) Response(ctx context.Context, review *model.Review) (model.ReviewResponse, error) {
	counts, err := s.repo.GetReviewVoteCounts(ctx, review.ID)
	if err != nil {
		return model.ReviewResponse{}, err
	}
	return model.ReviewResponse{
		ID:            review.ID,
		ApplicationID: review.ApplicationID,
		UserID:        review.UserID,
		Title:         review.Title,
		Body:          review.Body,
		CreatedAt:     review.CreatedAt,
		VoteCounts:    counts,
	}, nil
}

func (s *ReviewService) application(ctx context.Context, appID int64) (*model.Application, error) {
	app, err := s.repo.GetApplicationByID(ctx, appID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}
