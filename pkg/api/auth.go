package api

import "time"

// User представляет профиль пользователя, который возвращает сервер
type User struct {
	ID        string    `json:"id"`        // UUID пользователя
	Name      string    `json:"name"`      // отображаемое имя
	Email     string    `json:"email"`     // email, используется как логин
	CreatedAt time.Time `json:"createdAt"` // время регистрации
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse представляет ответ на успешный login или signup
type AuthResponse struct {
	Token string `json:"token"` // bearer token для последующих запросов
	User  User   `json:"user"`
}

// ForgotPasswordRequest представляет запрос на восстановление пароля
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest представляет запрос на установку нового пароля по reset token
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
