package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/optimizeai/internal/client/iocli"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = "OPTIMIZEAI_PASSWORD"

// passwordSource описывает, откуда брать пароль
type passwordSource struct {
	file string
}

// read возвращает пароль из источников в порядке приоритета:
// 1. переменная окружения OPTIMIZEAI_PASSWORD
// 2. файл из --password-file
// 3. интерактивный ввод
func (s passwordSource) read(in iocli.IO, prompt string) (string, error) {
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}

	if s.file != "" {
		content, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline
		password := strings.TrimRight(string(content), "\r\n")
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := in.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// interactive сообщает, будет ли пароль запрошен у пользователя
func (s passwordSource) interactive() bool {
	return os.Getenv(PasswordEnv) == "" && s.file == ""
}

// readInputIfEmpty запрашивает значение, если флаг не задан
func readInputIfEmpty(in iocli.IO, value, prompt string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	v, err := in.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(v), nil
}
