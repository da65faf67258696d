package model

import "time"

// AccountType separates the two forum roles: startups publish applications,
// testers review them.
type AccountType string

const (
	AccountTypeStartup AccountType = "startup"
	AccountTypeTester  AccountType = "tester"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeStartup || t == AccountTypeTester
}

// User is a forum account. Accounts are soft-deleted only; Deleted users are
// invisible to lookups but their rows are kept.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Description  string
	AccountType  AccountType
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterRequest struct {
	Username    string      `json:"username" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required"`
	AccountType AccountType `json:"account_type"`
	Description string      `json:"description"`
}

type UserUpdateRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
}

// UserSearch holds the optional filters of GET /users/.
type UserSearch struct {
	Username    string
	Email       string
	Description string
	AccountType string
}

type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	AccountType AccountType `json:"account_type"`
	Description string      `json:"description,omitempty"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		AccountType: u.AccountType,
		Description: u.Description,
	}
}
