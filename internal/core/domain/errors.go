package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownRole        = errors.New("unknown role")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNoActiveListener   = errors.New("no active session listener")
	ErrUnknownActivity    = errors.New("unknown activity event")
)
