package db

import (
	"context"

	"github.com/feedco/backend/internal/model"
)

const applicationColumns = `id, user_id, name, description, hide_reviews, deleted, created_at`

func scanApplication(row interface{ Scan(...any) error }) (*model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Name,
		&app.Description,
		&app.HideReviews,
		&app.Deleted,
		&app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (db *Postgres) CreateApplication(ctx context.Context, app *model.Application) (*model.Application, error) {
	query := `
		INSERT INTO applications (user_id, name, description, hide_reviews, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + applicationColumns
	return scanApplication(db.Pool.QueryRow(ctx, query,
		app.UserID, app.Name, app.Description, app.HideReviews))
}

func (db *Postgres) GetApplicationByID(ctx context.Context, appID int64) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND NOT deleted`
	return scanApplication(db.Pool.QueryRow(ctx, query, appID))
}

func (db *Postgres) SearchApplications(ctx context.Context, search model.ApplicationSearch) ([]*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE NOT deleted
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR description ILIKE '%' || $2 || '%')
		  AND ($3 = 0 OR user_id = $3)
		ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query, search.Name, search.Description, search.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []*model.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (db *Postgres) UpdateApplication(ctx context.Context, app *model.Application) (*model.Application, error) {
	query := `
		UPDATE applications
		SET name = $2, description = $3, hide_reviews = $4
		WHERE id = $1 AND NOT deleted
		RETURNING ` + applicationColumns
	return scanApplication(db.Pool.QueryRow(ctx, query,
		app.ID, app.Name, app.Description, app.HideReviews))
}

func (db *Postgres) SoftDeleteApplication(ctx context.Context, appID int64) error {
	query := `UPDATE applications SET deleted = TRUE WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, appID)
	return err
}

// UpsertRating inserts a grade or replaces the user's previous grade for the
// same application.
func (db *Postgres) UpsertRating(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	query := `
		INSERT INTO ratings (application_id, user_id, grade)
		VALUES ($1, $2, $3)
		ON CONFLICT (application_id, user_id) DO UPDATE SET grade = EXCLUDED.grade
		RETURNING id, application_id, user_id, grade`
	var out model.Rating
	err := db.Pool.QueryRow(ctx, query, rating.ApplicationID, rating.UserID, rating.Grade).Scan(
		&out.ID,
		&out.ApplicationID,
		&out.UserID,
		&out.Grade,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRatingSummary returns the rating count and average grade of an
// application; the average is zero when nobody rated yet.
func (db *Postgres) GetRatingSummary(ctx context.Context, appID int64) (int64, float64, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(grade), 0)
		FROM ratings
		WHERE application_id = $1`
	var count int64
	var avg float64
	err := db.Pool.QueryRow(ctx, query, appID).Scan(&count, &avg)
	return count, avg, err
}
