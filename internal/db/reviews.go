package db

import (
	"context"

	"github.com/feedco/backend/internal/model"
)

const reviewColumns = `id, application_id, user_id, title, body, created_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var review model.Review
	err := row.Scan(
		&review.ID,
		&review.ApplicationID,
		&review.UserID,
		&review.Title,
		&review.Body,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (db *Postgres) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	query := `
		INSERT INTO reviews (application_id, user_id, title, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + reviewColumns
	return scanReview(db.Pool.QueryRow(ctx, query,
		review.ApplicationID, review.UserID, review.Title, review.Body))
}

func (db *Postgres) GetReviewByID(ctx context.Context, reviewID int64) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(db.Pool.QueryRow(ctx, query, reviewID))
}

func (db *Postgres) ListReviewsByApplication(ctx context.Context, appID int64) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE application_id = $1 ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*model.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (db *Postgres) UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	query := `
		UPDATE reviews
		SET title = $2, body = $3
		WHERE id = $1
		RETURNING ` + reviewColumns
	return scanReview(db.Pool.QueryRow(ctx, query, review.ID, review.Title, review.Body))
}

func (db *Postgres) UpsertReviewVote(ctx context.Context, vote *model.Vote) (*model.Vote, error) {
	query := `
		INSERT INTO review_votes (review_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (review_id, user_id) DO UPDATE SET vote_type = EXCLUDED.vote_type
		RETURNING id, review_id, user_id, vote_type`
	var out model.Vote
	err := db.Pool.QueryRow(ctx, query, vote.TargetID, vote.UserID, vote.VoteType).Scan(
		&out.ID,
		&out.TargetID,
		&out.UserID,
		&out.VoteType,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReviewVote removes the user's vote and reports whether one existed.
func (db *Postgres) DeleteReviewVote(ctx context.Context, reviewID, userID int64) (bool, error) {
	query := `DELETE FROM review_votes WHERE review_id = $1 AND user_id = $2`
	tag, err := db.Pool.Exec(ctx, query, reviewID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) GetReviewVoteCounts(ctx context.Context, reviewID int64) (model.VoteCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE vote_type),
			COUNT(*) FILTER (WHERE NOT vote_type)
		FROM review_votes
		WHERE review_id = $1`
	var counts model.VoteCounts
	err := db.Pool.QueryRow(ctx, query, reviewID).Scan(&counts.Positive, &counts.Negative)
	return counts, err
}
