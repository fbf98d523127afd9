package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput оборачивается всеми ошибками валидации пакета
var ErrInvalidInput = errors.New("invalid input")

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen ограничение bcrypt на длину пароля в байтах
	MaxPasswordLen = 72
	// MinNameLen минимальная длина имени пользователя
	MinNameLen = 2
	// MaxNameLen максимальная длина имени пользователя
	MaxNameLen = 50
	// MaxEmailLen максимальная длина email (RFC 5321)
	MaxEmailLen = 254
)

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}

// NormalizeEmail приводит email к каноническому виду для хранения и поиска
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет, что строка является одиночным email адресом без display name
func ValidateEmail(email string) error {
	if email == "" {
		return invalid("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return invalid("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("please enter a valid email")
	}

	// mail.ParseAddress пропускает адреса без точки в домене
	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return invalid("please enter a valid email")
	}

	return nil
}

// ValidatePassword проверяет требования к паролю
// Длина: 8-72 байта
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return invalid("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return invalid("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}

// ValidatePasswordConfirmation проверяет пароль и совпадение с подтверждением
func ValidatePasswordConfirmation(password, confirmation string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	if password != confirmation {
		return invalid("passwords don't match")
	}

	return nil
}

// ValidateName проверяет отображаемое имя пользователя
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("name cannot be empty")
	}

	n := utf8.RuneCountInString(trimmed)
	if n < MinNameLen {
		return invalid("name must be at least %d characters", MinNameLen)
	}
	if n > MaxNameLen {
		return invalid("name is too long")
	}

	return nil
}

// ValidateCredentials проверяет пару email/пароль перед login
// Длина пароля не проверяется: правила могли измениться после регистрации
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	if password == "" {
		return invalid("password cannot be empty")
	}

	return nil
}
