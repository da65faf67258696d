package service

import (
	"context"

	"github.com/feedco/backend/internal/db"
	"github.com/feedco/backend/internal/model"
)

type userRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	SearchUsers(ctx context.Context, search model.UserSearch) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
	SoftDeleteUser(ctx context.Context, userID int64) error
}

type UserService struct {
	repo userRepository
}

func NewUserService(repo userRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates an account. The conflict check covers both username and
// email; the unique constraints catch the race between check and insert.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	accountType := req.AccountType
	if accountType == "" {
		accountType = model.AccountTypeTester
	}
	if !accountType.Valid() {
		return nil, ErrInvalidInput
	}
	if len(req.Description) > 200 {
		return nil, ErrInvalidInput
	}

	taken, err := s.repo.UserExists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Description:  req.Description,
		AccountType:  accountType,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Search(ctx context.Context, search model.UserSearch) ([]*model.User, error) {
	return s.repo.SearchUsers(ctx, search)
}

func (s *UserService) Update(ctx context.Context, user *model.User, req model.UserUpdateRequest) (*model.User, error) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Description != nil {
		if len(*req.Description) > 200 {
			return nil, ErrInvalidInput
		}
		user.Description = *req.Description
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the account; the row and its refresh-token history
// stay behind for audit.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.repo.SoftDeleteUser(ctx, userID)
}
