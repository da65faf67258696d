package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/feedco/backend/internal/model"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	authUserKey   = "auth_user"
	authClaimsKey = "auth_claims"
	requestIDKey  = "request_id"
)

// Authorized gates a route behind a bearer access token granting every
// listed scope. Invalid credentials and a missing scope both answer 401 with
// a WWW-Authenticate challenge; only the message tells them apart.
func Authorized(auth *service.AuthService, scopes ...string) gin.HandlerFunc {
	challenge := "Bearer"
	if len(scopes) > 0 {
		challenge = `Bearer scope="` + strings.Join(scopes, " ") + `"`
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			rejectUnauthorized(c, challenge, "invalid credentials")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			rejectUnauthorized(c, challenge, "invalid credentials")
			return
		}

		user, claims, err := auth.Authorize(c.Request.Context(), token, scopes)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInsufficientScope):
				rejectUnauthorized(c, challenge, "not enough permissions")
			case errors.Is(err, service.ErrInvalidCredentials):
				rejectUnauthorized(c, challenge, "invalid credentials")
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
			}
			return
		}

		c.Set(authUserKey, user)
		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, challenge, message string) {
	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: message})
}

// AuthUser returns the user the guard loaded for this request.
func AuthUser(c *gin.Context) *model.User {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}

func AuthClaims(c *gin.Context) *model.TokenClaims {
	if value, ok := c.Get(authClaimsKey); ok {
		if claims, ok := value.(*model.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// RequestLogger tags each request with an id and logs method, path, status
// and latency.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
