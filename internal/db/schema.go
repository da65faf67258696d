package db

import "context"

// EnsureSchema creates the forum tables when they are missing. The partial
// unique index on refresh_tokens backs the at-most-one-active-token-per-user
// invariant.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			account_type TEXT NOT NULL DEFAULT 'tester' CHECK (account_type IN ('startup', 'tester')),
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL,
			revoked BOOLEAN NOT NULL DEFAULT FALSE
		)
		`,
		`CREATE UNIQUE INDEX IF NOT EXISTS refresh_tokens_active_user_idx ON refresh_tokens(user_id) WHERE NOT revoked`,
		`
		CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			hide_reviews BOOLEAN NOT NULL DEFAULT FALSE,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS applications_user_id_idx ON applications(user_id)`,
		`
		CREATE TABLE IF NOT EXISTS ratings (
			id BIGSERIAL PRIMARY KEY,
			application_id BIGINT NOT NULL REFERENCES applications(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			grade SMALLINT NOT NULL CHECK (grade BETWEEN 1 AND 5),
			UNIQUE (application_id, user_id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			application_id BIGINT NOT NULL REFERENCES applications(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS reviews_application_id_idx ON reviews(application_id)`,
		`
		CREATE TABLE IF NOT EXISTS review_votes (
			id BIGSERIAL PRIMARY KEY,
			review_id BIGINT NOT NULL REFERENCES reviews(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			vote_type BOOLEAN NOT NULL,
			UNIQUE (review_id, user_id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS comments (
			id BIGSERIAL PRIMARY KEY,
			review_id BIGINT NOT NULL REFERENCES reviews(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			text TEXT NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE
		)
		`,
		`CREATE INDEX IF NOT EXISTS comments_review_id_idx ON comments(review_id)`,
		`
		CREATE TABLE IF NOT EXISTS comment_votes (
			id BIGSERIAL PRIMARY KEY,
			comment_id BIGINT NOT NULL REFERENCES comments(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			vote_type BOOLEAN NOT NULL,
			UNIQUE (comment_id, user_id)
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
