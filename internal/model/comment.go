package model

// Comment is a discussion entry under a review.
type Comment struct {
	ID       int64
	ReviewID int64
	UserID   int64
	Text     string
	Deleted  bool
}

type CommentCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentUpdateRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID       int64  `json:"id"`
	ReviewID int64  `json:"review_id"`
	UserID   int64  `json:"user_id"`
	Text     string `json:"text"`
	VoteCounts
}
