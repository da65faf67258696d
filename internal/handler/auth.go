package handler

import (
	"net/http"
	"strings"

	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	svc *service.AuthService
	log *logrus.Logger
}

func NewAuthHandler(svc *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Login godoc
// @Summary Obtain an access/refresh token pair
// @Description OAuth2 password grant style form: username, password, optional space-delimited scope.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param scope formData string false "Space-delimited scopes"
// @Success 200 {object} model.TokenSet
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	scopes := strings.Fields(c.PostForm("scope"))

	user, err := h.svc.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		writeError(c, err)
		return
	}

	tokenSet, err := h.svc.IssueTokenSet(c.Request.Context(), user, scopes)
	if err != nil {
		h.log.WithError(err).Error("failed to issue token set")
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, tokenSet.RefreshToken)
	c.JSON(http.StatusOK, tokenSet)
}

// Refresh godoc
// @Summary Rotate the token pair using the refresh_token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} model.TokenSet
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(h.svc.CookieConfig().Name)
	tokenSet, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, tokenSet.RefreshToken)
	c.JSON(http.StatusOK, tokenSet)
}

// Logout godoc
// @Summary Revoke the refresh token and clear its cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(h.svc.CookieConfig().Name)
	if err := h.svc.Logout(c.Request.Context(), refreshToken); err != nil {
		h.log.WithError(err).Warn("failed to revoke refresh token on logout")
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, token, cfg.MaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}
