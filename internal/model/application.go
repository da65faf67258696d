package model

import "time"

// Application is a product placed on the forum by a startup for testers to
// try out. HideReviews restricts the review listing to the owning startup.
type Application struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	HideReviews bool
	Deleted     bool
	CreatedAt   time.Time
}

// Rating is a 1..5 grade a tester gives an application. One rating per user
// per application; rating again replaces the grade.
type Rating struct {
	ID            int64
	ApplicationID int64
	UserID        int64
	Grade         int16
}

type ApplicationCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required,min=200,max=1000"`
	HideReviews bool   `json:"hide_reviews"`
}

type ApplicationUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HideReviews *bool   `json:"hide_reviews"`
}

type ApplicationSearch struct {
	Name        string
	Description string
	UserID      int64
}

type RatingRequest struct {
	Grade int16 `json:"grade" binding:"required,min=1,max=5"`
}

type RatingResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	Grade  int16 `json:"grade"`
}

type ApplicationResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HideReviews bool      `json:"hide_reviews"`
	CreatedAt   time.Time `json:"date_created"`

	RatingCount   int64   `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}
