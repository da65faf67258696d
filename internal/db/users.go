package db

import (
	"context"

	"github.com/feedco/backend/internal/model"
)

const userColumns = `id, username, email, password_hash, description, account_type, deleted, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Description,
		&user.AccountType,
		&user.Deleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, description, account_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Description, user.AccountType))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND NOT deleted`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT deleted`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

// UserExists reports whether any account, soft-deleted ones included, already
// holds the username or the email.
func (db *Postgres) UserExists(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	err := db.Pool.QueryRow(ctx, query, username, email).Scan(&exists)
	return exists, err
}

func (db *Postgres) SearchUsers(ctx context.Context, search model.UserSearch) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT deleted
		  AND ($1 = '' OR username ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR email ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR description ILIKE '%' || $3 || '%')
		  AND ($4 = '' OR account_type = $4)
		ORDER BY id`
	rows, err := db.Pool.Query(ctx, query,
		search.Username, search.Email, search.Description, search.AccountType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, description = $4, updated_at = NOW()
		WHERE id = $1 AND NOT deleted
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.Description))
}

func (db *Postgres) SoftDeleteUser(ctx context.Context, userID int64) error {
	query := `UPDATE users SET deleted = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}
