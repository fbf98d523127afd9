package storage

import (
	"context"

	"github.com/iudanet/optimizeai/internal/models"
)

// SessionStorage defines interface for issued access token persistence
type SessionStorage interface {
	// CreateSession stores a session for a newly issued token
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves session by ID (the token's jti)
	// Returns ErrSessionNotFound if session doesn't exist
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// DeleteSession revokes one session
	// Returns ErrSessionNotFound if session doesn't exist
	DeleteSession(ctx context.Context, id string) error

	// DeleteUserSessions revokes all sessions of a user
	// Returns number of deleted sessions
	DeleteUserSessions(ctx context.Context, userID string) (int, error)

	// DeleteExpiredSessions removes all expired sessions
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// ResetTokenStorage defines interface for password reset tokens
type ResetTokenStorage interface {
	// SaveResetToken stores a reset token, replacing earlier tokens of the same user
	SaveResetToken(ctx context.Context, token *models.ResetToken) error

	// ConsumeResetToken returns and deletes the token with the given hash
	// Returns ErrResetTokenNotFound if token doesn't exist
	ConsumeResetToken(ctx context.Context, tokenHash string) (*models.ResetToken, error)
}
