package main

import (
	"context"
	"os"
	"strings"

	"github.com/feedco/backend/internal/config"
	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/handler"
	"github.com/feedco/backend/internal/service"
	"github.com/sirupsen/logrus"
)

// @title FeedCo API
// @version 1.0
// @description Forum API connecting startups publishing applications with testers reviewing them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := newLogger(cfg.Log)

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure database schema")
	}

	authSvc, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.WithError(err).Fatal("invalid auth configuration")
	}

	router := handler.NewRouter(handler.Services{
		Auth:         authSvc,
		Users:        service.NewUserService(store),
		Applications: service.NewApplicationService(store),
		Reviews:      service.NewReviewService(store),
		Comments:     service.NewCommentService(store),
	}, cfg.HTTP, log)

	log.WithField("addr", cfg.HTTP.Addr).Info("starting http server")
	if err := router.Run(cfg.HTTP.Addr); err != nil {
		log.WithError(err).Fatal("http server stopped")
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
