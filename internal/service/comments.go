package service

import (
	"context"

	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/model"
)

type commentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error)
	ListCommentsByReview(ctx context.Context, reviewID int64) ([]*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	SoftDeleteComment(ctx context.Context, commentID int64) error
	UpsertCommentVote(ctx context.Context, vote *model.Vote) (*model.Vote, error)
	DeleteCommentVote(ctx context.Context, commentID, userID int64) (bool, error)
	GetCommentVoteCounts(ctx context.Context, commentID int64) (model.VoteCounts, error)
	GetReviewByID(ctx context.Context, reviewID int64) (*model.Review, error)
}

type CommentService struct {
	repo commentRepository
}

func NewCommentService(repo commentRepository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) Create(ctx context.Context, author *model.User, reviewID int64, req model.CommentCreateRequest) (*model.Comment, error) {
	if _, err := s.repo.GetReviewByID(ctx, reviewID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.CreateComment(ctx, &model.Comment{
		ReviewID: reviewID,
		UserID:   author.ID,
		Text:     req.Text,
	})
}

func (s *CommentService) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByReview(ctx context.Context, reviewID int64) ([]*model.Comment, error) {
	if _, err := s.repo.GetReviewByID(ctx, reviewID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListCommentsByReview(ctx, reviewID)
}

func (s *CommentService) Update(ctx context.Context, caller *model.User, commentID int64, req model.CommentUpdateRequest) (*model.Comment, error) {
	comment, err := s.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != caller.ID {
		return nil, ErrForbidden
	}
	comment.Text = req.Text
	return s.repo.UpdateComment(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, caller *model.User, commentID int64) error {
	comment, err := s.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != caller.ID {
		return ErrForbidden
	}
	return s.repo.SoftDeleteComment(ctx, commentID)
}

func (s *CommentService) Vote(ctx context.Context, caller *model.User, commentID int64, voteType bool) (*model.Vote, error) {
	if _, err := s.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.repo.UpsertCommentVote(ctx, &model.Vote{
		TargetID: commentID,
		UserID:   caller.ID,
		VoteType: voteType,
	})
}

// Counts returns the live vote tallies of a comment.
func (s *CommentService) Counts(ctx context.Context, commentID int64) (model.VoteCounts, error) {
	return s.repo.GetCommentVoteCounts(ctx, commentID)
}

func (s *CommentService) Unvote(ctx context.Context, caller *model.User, commentID int64) error {
	if _, err := s.GetByID(ctx, commentID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteCommentVote(ctx, commentID, caller.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) Response(ctx context.Context, comment *model.Comment) (model.CommentResponse, error) {
	counts, err := s.repo.GetCommentVoteCounts(ctx, comment.ID)
	if err != nil {
		return model.CommentResponse{}, err
	}
	return model.CommentResponse{
		ID:         comment.ID,
		ReviewID:   comment.ReviewID,
		UserID:     comment.UserID,
		Text:       comment.Text,
		VoteCounts: counts,
	}, nil
}
