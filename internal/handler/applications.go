package handler

import (
	"net/http"
	"strconv"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
	log *logrus.Logger
}

func NewApplicationHandler(svc *service.ApplicationService, log *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, log: log}
}

// Search godoc
// @Summary List applications matching the optional filters
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring"
// @Param description query string false "Description substring"
// @Param user_id query int false "Owning user"
// @Success 200 {array} model.ApplicationResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/applications [get]
func (h *ApplicationHandler) Search(c *gin.Context) {
	var userID int64
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid user_id"})
			return
		}
		userID = parsed
	}

	apps, err := h.svc.Search(c.Request.Context(), model.ApplicationSearch{
		Name:        c.Query("name"),
		Description: c.Query("description"),
		UserID:      userID,
	})
	if err != nil {
		h.log.WithError(err).Error("application search failed")
		writeError(c, err)
		return
	}

	out := make([]model.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp, err := h.svc.Response(c.Request.Context(), app)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get an application by id
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} model.ApplicationResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	app, err := h.svc.GetByID(c.Request.Context(), appID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.svc.Response(c.Request.Context(), app)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Publish an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ApplicationCreateRequest true "Application data"
// @Success 201 {object} model.ApplicationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/v1/applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req model.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	app, err := h.svc.Create(c.Request.Context(), AuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.svc.Response(c.Request.Context(), app)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update an owned application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body model.ApplicationUpdateRequest true "Fields to change"
// @Success 200 {object} model.ApplicationResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id} [patch]
func (h *ApplicationHandler) Update(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	app, err := h.svc.Update(c.Request.Context(), AuthUser(c), appID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.svc.Response(c.Request.Context(), app)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Soft-delete an owned application
// @Tags applications
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), AuthUser(c), appID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rate godoc
// @Summary Grade an application from 1 to 5
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body model.RatingRequest true "Grade"
// @Success 201 {object} model.RatingResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/applications/{id}/ratings [post]
func (h *ApplicationHandler) Rate(c *gin.Context) {
	appID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	rating, err := h.svc.Rate(c.Request.Context(), AuthUser(c), appID, req.Grade)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.RatingResponse{
		ID:     rating.ID,
		UserID: rating.UserID,
		Grade:  rating.Grade,
	})
}

// pathID parses the :id segment. A non-numeric id answers 400 and the
// handler must bail out when ok is false.
func pathID(c *gin.Context) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
