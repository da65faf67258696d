package handler

import (
	"net/http"
	"strconv"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	svc *service.UserService
	log *logrus.Logger
}

func NewUserHandler(svc *service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Register godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Account data"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewUserResponse(user))
}

// Search godoc
// @Summary List users matching the optional filters
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username query string false "Username substring"
// @Param email query string false "Email substring"
// @Param description query string false "Description substring"
// @Param account_type query string false "startup or tester"
// @Success 200 {array} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.svc.Search(c.Request.Context(), model.UserSearch{
		Username:    c.Query("username"),
		Email:       c.Query("email"),
		Description: c.Query("description"),
		AccountType: c.Query("account_type"),
	})
	if err != nil {
		h.log.WithError(err).Error("user search failed")
		writeError(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, model.NewUserResponse(user))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid user id"})
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, model.NewUserResponse(AuthUser(c)))
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UserUpdateRequest true "Fields to change"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req model.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), AuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// DeleteMe godoc
// @Summary Soft-delete the authenticated user
// @Tags users
// @Security BearerAuth
// @Success 204
// @Router /api/v1/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), AuthUser(c).ID); err != nil {
		h.log.WithError(err).Error("user delete failed")
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
