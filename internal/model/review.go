package model

import "time"

// Review is a tester's write-up about an application.
type Review struct {
	ID            int64
	ApplicationID int64
	UserID        int64
	Title         string
	Body          string
	CreatedAt     time.Time
}

// Vote is a for/against mark on a review or a comment. VoteType true means
// the voter supports the target. Voting again replaces the previous vote.
type Vote struct {
	ID       int64
	TargetID int64
	UserID   int64
	VoteType bool
}

// VoteCounts aggregates the votes of one target.
type VoteCounts struct {
	Positive int64 `json:"votes_positive"`
	Negative int64 `json:"votes_negative"`
}

type ReviewCreateRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required,max=1000"`
}

type ReviewUpdateRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type VoteRequest struct {
	VoteType *bool `json:"vote_type" binding:"required"`
}

type ReviewResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"date_created"`
	VoteCounts
}
