package db

import (
	"context"
	"time"

	"github.com/feedco/backend/internal/model"
)

// SaveRefreshToken records a freshly issued refresh token, revoking the
// user's previously active one inside the same transaction so at most one
// active row per user survives.
func (db *Postgres) SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE user_id = $1 AND NOT revoked
	`, userID); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, created_at, expires_at)
		VALUES ($1, $2, NOW(), $3)
	`, userID, token, expiresAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *Postgres) GetRefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at, revoked
		FROM refresh_tokens
		WHERE token = $1
	`
	var record model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, token).Scan(
		&record.ID,
		&record.UserID,
		&record.Token,
		&record.CreatedAt,
		&record.ExpiresAt,
		&record.Revoked,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (db *Postgres) RevokeRefreshToken(ctx context.Context, token string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token = $1 AND NOT revoked
	`
	_, err := db.Pool.Exec(ctx, query, token)
	return err
}
