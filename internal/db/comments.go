package db

import (
	"context"

	"github.com/feedco/backend/internal/model"
)

const commentColumns = `id, review_id, user_id, text, deleted`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.UserID,
		&comment.Text,
		&comment.Deleted,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (db *Postgres) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		INSERT INTO comments (review_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns
	return scanComment(db.Pool.QueryRow(ctx, query,
		comment.ReviewID, comment.UserID, comment.Text))
}

func (db *Postgres) GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1 AND NOT deleted`
	return scanComment(db.Pool.QueryRow(ctx, query, commentID))
}

func (db *Postgres) ListCommentsByReview(ctx context.Context, reviewID int64) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE review_id = $1 AND NOT deleted ORDER BY id`
	rows, err := db.Pool.Query(ctx, query, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (db *Postgres) UpdateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET text = $2
		WHERE id = $1 AND NOT deleted
		RETURNING ` + commentColumns
	return scanComment(db.Pool.QueryRow(ctx, query, comment.ID, comment.Text))
}

func (db *Postgres) SoftDeleteComment(ctx context.Context, commentID int64) error {
	query := `UPDATE comments SET deleted = TRUE WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, commentID)
	return err
}

func (db *Postgres) UpsertCommentVote(ctx context.Context, vote *model.Vote) (*model.Vote, error) {
	query := `
		INSERT INTO comment_votes (comment_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (comment_id, user_id) DO UPDATE SET vote_type = EXCLUDED.vote_type
		RETURNING id, comment_id, user_id, vote_type`
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

func (db *Postgres) DeleteCommentVote(ctx context.Context, commentID, userID int64) (bool, error) {
	query := `DELETE FROM comment_votes WHERE comment_id = $1 AND user_id = $2`
	tag, err := db.Pool.Exec(ctx, query, commentID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) GetCommentVoteCounts(ctx context.Context, commentID int64) (model.VoteCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE vote_type),
			COUNT(*) FILTER (WHERE NOT vote_type)
		FROM comment_votes
		WHERE comment_id = $1`
	var counts model.VoteCounts
	err := db.Pool.QueryRow(ctx, query, commentID).Scan(&counts.Positive, &counts.Negative)
	return counts, err
}
