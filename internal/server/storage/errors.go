package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrSessionNotFound indicates that session was revoked or never existed
	ErrSessionNotFound = errors.New("session not found")

	// ErrResetTokenNotFound indicates that reset token is unknown or already used
	ErrResetTokenNotFound = errors.New("reset token not found")

	// ErrProjectNotFound indicates that project does not exist or belongs to another user
	ErrProjectNotFound = errors.New("project not found")
)
