package service

import "errors"

// Failure taxonomy surfaced to clients. A bad signature, an expired token and
// a vanished user all collapse into ErrInvalidCredentials so the response
// does not leak which check failed; a missing scope is reported separately.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientScope   = errors.New("not enough permissions")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMisconfigured       = errors.New("auth config invalid")
)
