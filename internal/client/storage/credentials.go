package storage

import (
	"context"
	"time"
)

//go:generate moq -out credentials_mock.go . CredentialStore

// CredentialStore хранит bearer token между запусками клиента
// Хранилище не проверяет формат токена; менять его должен только session.Manager
type CredentialStore interface {
	// GetToken возвращает сохраненный токен
	// Returns ErrTokenNotFound if no token is stored
	GetToken(ctx context.Context) (string, error)

	// SaveToken заменяет сохраненный токен
	SaveToken(ctx context.Context, token string) error

	// DeleteToken удаляет токен; удаление из пустого хранилища не является ошибкой
	DeleteToken(ctx context.Context) error
}

// Credentials представляет запись в хранилище
type Credentials struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}
