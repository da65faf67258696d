package handler

import (
	"errors"
	"net/http"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// writeError maps service sentinels onto HTTP statuses. Everything
// unexpected is a plain 500 without detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, service.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "invalid refresh token"})
	case errors.Is(err, service.ErrInsufficientScope):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "not enough permissions"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Error: "forbidden"})
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "already exists"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
	}
}
