package handlers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/optimizeai/internal/models"
	"github.com/iudanet/optimizeai/internal/server/jwt"
	"github.com/iudanet/optimizeai/internal/server/storage"
	"github.com/iudanet/optimizeai/internal/validation"
	"github.com/iudanet/optimizeai/pkg/api"
)

// ResetNotifier доставляет пользователю токен сброса пароля
type ResetNotifier interface {
	NotifyReset(ctx context.Context, user *models.User, token string) error
}

// LogNotifier пишет токен сброса в лог вместо отправки письма
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyReset implements ResetNotifier.
func (n LogNotifier) NotifyReset(ctx context.Context, user *models.User, token string) error {
	n.Logger.InfoContext(ctx, "password reset requested",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("reset_token", token))
	return nil
}

// AuthConfig параметры выдачи токенов
type AuthConfig struct {
	ResetTTL   time.Duration
	BcryptCost int
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	users    storage.UserStorage
	sessions storage.SessionStorage
	resets   storage.ResetTokenStorage
	tokens   *jwt.Service
	notifier ResetNotifier
	now      func() time.Time
	cfg      AuthConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	users storage.UserStorage,
	sessions storage.SessionStorage,
	resets storage.ResetTokenStorage,
	tokens *jwt.Service,
	notifier ResetNotifier,
	cfg AuthConfig,
) *AuthHandler {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.ResetTTL == 0 {
		cfg.ResetTTL = time.Hour
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &AuthHandler{
		responder: responder{logger: logger},
		users:     users,
		sessions:  sessions,
		resets:    resets,
		tokens:    tokens,
		notifier:  notifier,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Signup обрабатывает POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validateSignup(req.Name, email, req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid signup request", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := h.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", email))
			h.sendError(w, "an account with this email already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", user.ID))
	h.issueSession(w, r, user, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateCredentials(email, req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found")
			h.sendError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		h.sendError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))
	h.issueSession(w, r, user, http.StatusOK)
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user no longer exists", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout
// Отзывается только текущая сессия
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := GetSessionID(ctx)
	if !ok {
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		h.logger.ErrorContext(ctx, "failed to delete session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, _ := GetUserID(ctx)
	h.logger.InfoContext(ctx, "user logged out successfully", slog.String("user_id", userID))
	w.WriteHeader(http.StatusNoContent)
}

// ForgotPassword обрабатывает POST /api/auth/forgot-password
// Ответ не зависит от того, существует ли пользователь
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		h.logger.InfoContext(ctx, "password reset for unknown email")
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := newResetToken()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := h.now()
	record := &models.ResetToken{
		TokenHash: hashResetToken(token),
		UserID:    user.ID,
		ExpiresAt: now.Add(h.cfg.ResetTTL),
		CreatedAt: now,
	}
	if err := h.resets.SaveResetToken(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to save reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.notifier.NotifyReset(ctx, user, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to deliver reset token", slog.Any("error", err))
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword обрабатывает POST /api/auth/reset-password
// После смены пароля все сессии пользователя отзываются
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		h.sendError(w, "reset token is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.resets.ConsumeResetToken(ctx, hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, storage.ErrResetTokenNotFound) {
			h.sendError(w, "reset link is invalid or has already been used", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to consume reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := h.now()
	if now.After(record.ExpiresAt) {
		h.logger.WarnContext(ctx, "reset token expired", slog.String("user_id", record.UserID))
		h.sendError(w, "reset link has expired", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.cfg.BcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdatePassword(ctx, record.UserID, string(hash), now); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	revoked, err := h.sessions.DeleteUserSessions(ctx, record.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to revoke sessions", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "password reset successfully",
		slog.String("user_id", record.UserID),
		slog.Int("sessions_revoked", revoked))
	w.WriteHeader(http.StatusNoContent)
}

// issueSession выпускает токен, сохраняет сессию и отправляет AuthResponse
func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	ctx := r.Context()

	token, claims, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	session := &models.Session{
		ID:        claims.ID,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: claims.IssuedAt.Time,
	}
	if err := h.sessions.CreateSession(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "failed to save session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.AuthResponse{Token: token, User: toAPIUser(user)}, status)
}

func validateSignup(name, email, password string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return validation.ValidatePassword(password)
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// newResetToken генерирует 32 случайных байта в hex
func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashResetToken в БД хранится только хеш токена
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
