package service

import (
	"context"

	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/model"
)

type applicationRepository interface {
	CreateApplication(ctx context.Context, app *model.Application) (*model.Application, error)
	GetApplicationByID(ctx context.Context, appID int64) (*model.Application, error)
	SearchApplications(ctx context.Context, search model.ApplicationSearch) ([]*model.Application, error)
	UpdateApplication(ctx context.Context, app *model.Application) (*model.Application, error)
	SoftDeleteApplication(ctx context.Context, appID int64) error
	UpsertRating(ctx context.Context, rating *model.Rating) (*model.Rating, error)
	GetRatingSummary(ctx context.Context, appID int64) (int64, float64, error)
}

type ApplicationService struct {
	repo applicationRepository
}

func NewApplicationService(repo applicationRepository) *ApplicationService {
	return &ApplicationService{repo: repo}
}

// Create publishes an application owned by the calling startup account.
func (s *ApplicationService) Create(ctx context.Context, owner *model.User, req model.ApplicationCreateRequest) (*model.Application, error) {
	if owner.AccountType != model.AccountTypeStartup {
		return nil, ErrForbidden
	}
	return s.repo.CreateApplication(ctx, &model.Application{
		UserID:      owner.ID,
		Name:        req.Name,
		Description: req.Description,
		HideReviews: req.HideReviews,
	})
}

func (s *ApplicationService) GetByID(ctx context.Context, appID int64) (*model.Application, error) {
	app, err := s.repo.GetApplicationByID(ctx, appID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Search(ctx context.Context, search model.ApplicationSearch) ([]*model.Application, error) {
	return s.repo.SearchApplications(ctx, search)
}

func (s *ApplicationService) Update(ctx context.Context, caller *model.User, appID int64, req model.ApplicationUpdateRequest) (*model.Application, error) {
	app, err := s.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.UserID != caller.ID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > 100 {
			return nil, ErrInvalidInput
		}
		app.Name = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) < 200 || len(*req.Description) > 1000 {
			return nil, ErrInvalidInput
		}
		app.Description = *req.Description
	}
	if req.HideReviews != nil {
		app.HideReviews = *req.HideReviews
	}

	updated, err := s.repo.UpdateApplication(ctx, app)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *ApplicationService) Delete(ctx context.Context, caller *model.User, appID int64) error {
	app, err := s.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	if app.UserID != caller.ID {
		return ErrForbidden
	}
	return s.repo.SoftDeleteApplication(ctx, appID)
}

// Rate records the caller's 1..5 grade; rating the same application again
// replaces the previous grade.
func (s *ApplicationService) Rate(ctx context.Context, caller *model.User, appID int64, grade int16) (*model.Rating, error) {
	if grade < 1 || grade > 5 {
		return nil, ErrInvalidInput
	}
	if _, err := s.GetByID(ctx, appID); err != nil {
		return nil, err
	}
	return s.repo.UpsertRating(ctx, &model.Rating{
		ApplicationID: appID,
		UserID:        caller.ID,
		Grade:         grade,
	})
}

// Response assembles the API shape of one application including its rating
// summary.
func (s *ApplicationService) Response(ctx context.Context, app *model.Application) (model.ApplicationResponse, error) {
	count, avg, err := s.repo.GetRatingSummary(ctx, app.ID)
	if err != nil {
		return model.ApplicationResponse{}, err
	}
	return model.ApplicationResponse{
		ID:            app.ID,
		UserID:        app.UserID,
		Name:          app.Name,
		Description:   app.Description,
		HideReviews:   app.HideReviews,
		CreatedAt:     app.CreatedAt,
		RatingCount:   count,
		AverageRating: avg,
	}, nil
}
