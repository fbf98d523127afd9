package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`            // UUID пользователя
	Name         string    `json:"name"`          // отображаемое имя
	Email        string    `json:"email"`         // уникальный email в нижнем регистре
	PasswordHash string    `json:"password_hash"` // bcrypt хеш пароля
	CreatedAt    time.Time `json:"created_at"`    // время создания
	UpdatedAt    time.Time `json:"updated_at"`    // время последнего обновления
}

// Session представляет выданный access token
// Токен действителен, пока строка сессии существует и не истекла
type Session struct {
	ID        string    `json:"id"`         // jti из JWT
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}

// ResetToken представляет одноразовый токен сброса пароля
type ResetToken struct {
	TokenHash string    `json:"token_hash"` // SHA256 хеш токена (hex)
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
