package handler

import (
	"github.com/feedco/backend/internal/config"
	"github.com/feedco/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services bundles everything the router needs.
type Services struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Applications *service.ApplicationService
	Reviews      *service.ReviewService
	Comments     *service.CommentService
}

// NewRouter wires every route. Scope requirements follow the forum's
// permission model: "users" for user lookups, "me" for the caller's own
// account, "applications" for the application/review/comment surface.
func NewRouter(svcs Services, httpCfg config.HTTPConfig, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(httpCfg.AllowedOrigins, httpCfg.AllowCredentials))

	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)

	authH := NewAuthHandler(svcs.Auth, log)
	userH := NewUserHandler(svcs.Users, log)
	appH := NewApplicationHandler(svcs.Applications, log)
	reviewH := NewReviewHandler(svcs.Reviews, log)
	commentH := NewCommentHandler(svcs.Comments, log)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authH.Logout)

	users := v1.Group("/users")
	users.POST("", userH.Register)
	users.GET("", Authorized(svcs.Auth, service.ScopeUsers), userH.Search)
	users.GET("/me", Authorized(svcs.Auth, service.ScopeMe), userH.Me)
	users.PATCH("/me", Authorized(svcs.Auth, service.ScopeMe), userH.UpdateMe)
	users.DELETE("/me", Authorized(svcs.Auth, service.ScopeMe), userH.DeleteMe)
	users.GET("/:id", Authorized(svcs.Auth, service.ScopeUsers), userH.Get)

	apps := v1.Group("/applications", Authorized(svcs.Auth, service.ScopeApplications))
	apps.GET("", appH.Search)
	apps.POST("", appH.Create)
	apps.GET("/:id", appH.Get)
	apps.PATCH("/:id", appH.Update)
	apps.DELETE("/:id", appH.Delete)
	apps.POST("/:id/ratings", appH.Rate)
	apps.GET("/:id/reviews", reviewH.ListByApplication)
	apps.POST("/:id/reviews", reviewH.Create)

	reviews := v1.Group("/reviews", Authorized(svcs.Auth, service.ScopeApplications))
	reviews.GET("/:id", reviewH.Get)
	reviews.PATCH("/:id", reviewH.Update)
	reviews.POST("/:id/votes", reviewH.Vote)
	reviews.DELETE("/:id/votes", reviewH.Unvote)
	reviews.GET("/:id/comments", commentH.ListByReview)
	reviews.POST("/:id/comments", commentH.Create)

	comments := v1.Group("/comments", Authorized(svcs.Auth, service.ScopeApplications))
	comments.GET("/:id", commentH.Get)
	comments.PATCH("/:id", commentH.Update)
	comments.DELETE("/:id", commentH.Delete)
	comments.POST("/:id/votes", commentH.Vote)
	comments.DELETE("/:id/votes", commentH.Unvote)

	return router
}
