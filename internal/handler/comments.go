package handler

import (
	"net/http"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	svc *service.CommentService
	log *logrus.Logger
}

func NewCommentHandler(svc *service.CommentService, log *logrus.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body model.CommentCreateRequest true "Comment"
// @Success 201 {object} model.CommentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), AuthUser(c), reviewID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, comment)
}

// ListByReview godoc
// @Summary List a review's comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {array} model.CommentResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id}/comments [get]
func (h *CommentHandler) ListByReview(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	comments, err := h.svc.ListByReview(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]model.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp, err := h.svc.Response(c.Request.Context(), comment)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a comment by id
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} model.CommentResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	comment, err := h.svc.GetByID(c.Request.Context(), commentID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, comment)
}

// Update godoc
// @Summary Update an owned comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body model.CommentUpdateRequest true "New text"
// @Success 200 {object} model.CommentResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), AuthUser(c), commentID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, comment)
}

// Delete godoc
// @Summary Soft-delete an owned comment
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), AuthUser(c), commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Vote godoc
// @Summary Vote for or against a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body model.VoteRequest true "Vote"
// @Success 201 {object} model.VoteCounts
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/comments/{id}/votes [post]
func (h *CommentHandler) Vote(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	if _, err := h.svc.Vote(c.Request.Context(), AuthUser(c), commentID, *req.VoteType); err != nil {
		writeError(c, err)
		return
	}

	counts, err := h.svc.Counts(c.Request.Context(), commentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, counts)
}

// Unvote godoc
// @Summary Withdraw the caller's vote on a comment
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/comments/{id}/votes [delete]
func (h *CommentHandler) Unvote(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Unvote(c.Request.Context(), AuthUser(c), commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) respond(c *gin.Context, status int, comment *model.Comment) {
	resp, err := h.svc.Response(c.Request.Context(), comment)
	if err != nil {
		h.log.WithError(err).Error("failed to assemble comment response")
		writeError(c, err)
		return
	}
	c.JSON(status, resp)
}
