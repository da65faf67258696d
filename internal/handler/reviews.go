package handler

import (
	"net/http"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	svc *service.ReviewService
	log *logrus.Logger
}

func NewReviewHandler(svc *service.ReviewService, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: log}
}

// Create godoc
// @Summary Write a review for an application
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body model.ReviewCreateRequest true "Review"
// @Success 201 {object} model.ReviewResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	review, err := h.svc.Create(c.Request.Context(), AuthUser(c), appID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, review)
}

// ListByApplication godoc
// @Summary List an application's reviews
// @Description Hidden reviews are readable by the owning startup only.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {array} model.ReviewResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id}/reviews [get]
func (h *ReviewHandler) ListByApplication(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.svc.ListByApplication(c.Request.Context(), AuthUser(c), appID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]model.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp, err := h.svc.Response(c.Request.Context(), review)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a review by id
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} model.ReviewResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	review, err := h.svc.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, review)
}

// Update godoc
// @Summary Update an owned review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body model.ReviewUpdateRequest true "Fields to change"
// @Success 200 {object} model.ReviewResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id} [patch]
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	review, err := h.svc.Update(c.Request.Context(), AuthUser(c), reviewID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, review)
}

// Vote godoc
// @Summary Vote for or against a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body model.VoteRequest true "Vote"
// @Success 201 {object} model.VoteCounts
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id}/votes [post]
func (h *ReviewHandler) Vote(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	if _, err := h.svc.Vote(c.Request.Context(), AuthUser(c), reviewID, *req.VoteType); err != nil {
		writeError(c, err)
		return
	}

	counts, err := h.svc.Counts(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, counts)
}

// Unvote godoc
// @Summary Withdraw the caller's vote on a review
// @Tags reviews
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/reviews/{id}/votes [delete]
func (h *ReviewHandler) Unvote(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Unvote(c.Request.Context(), AuthUser(c), reviewID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) respond(c *gin.Context, status int, review *model.Review) {
	resp, err := h.svc.Response(c.Request.Context(), review)
	if err != nil {
		h.log.WithError(err).Error("failed to assemble review response")
		writeError(c, err)
		return
	}
	c.JSON(status, resp)
}
