package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/iudanet/optimizeai/internal/client/storage"
	"github.com/iudanet/optimizeai/pkg/api"
)

// DefaultTimeout таймаут HTTP запросов по умолчанию
const DefaultTimeout = 30 * time.Second

// maxErrorBody ограничивает размер тела ошибки, попадающего в сообщение
const maxErrorBody = 512

// Client представляет HTTP клиент для взаимодействия с сервером
// Публичные методы auth идут без токена, остальные с Authorization: Bearer
type Client struct {
	publicClient *http.Client
	authedClient *http.Client
	baseURL      string
}

// Option настраивает Client
type Option func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// WithTimeout задаёт таймаут HTTP запросов
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTransport подменяет базовый RoundTripper (используется в тестах)
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient создает новый API клиент
// Токен для защищённых запросов читается из store при каждом запросе
func NewClient(baseURL string, store storage.CredentialStore, opts ...Option) *Client {
	o := clientOptions{
		transport: http.DefaultTransport,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := &requestIDTransport{base: o.transport}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		publicClient: &http.Client{
			Timeout:   o.timeout,
			Transport: base,
		},
		authedClient: &http.Client{
			Timeout: o.timeout,
			Transport: &oauth2.Transport{
				Source: NewTokenSource(store),
				Base:   base,
			},
			// Не пересылаем токен на другой хост при редиректе
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if req.URL.Host != via[0].URL.Host {
					return fmt.Errorf("refusing cross-host redirect to %s", req.URL.Host)
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login обменивает email и пароль на токен
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, c.publicClient, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Signup регистрирует нового пользователя
func (c *Client) Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, c.publicClient, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль владельца текущего токена
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.doRequest(ctx, c.authedClient, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &user, nil
}

// Logout отзывает текущий токен на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, c.authedClient, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ForgotPassword запрашивает письмо со ссылкой для сброса пароля
func (c *Client) ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) error {
	if err := c.doRequest(ctx, c.publicClient, http.MethodPost, "/api/auth/forgot-password", req, nil); err != nil {
		return fmt.Errorf("forgot password request failed: %w", err)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по reset token
func (c *Client) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error {
	if err := c.doRequest(ctx, c.publicClient, http.MethodPost, "/api/auth/reset-password", req, nil); err != nil {
		return fmt.Errorf("reset password request failed: %w", err)
	}
	return nil
}

// ListProjects возвращает проекты пользователя
func (c *Client) ListProjects(ctx context.Context) ([]api.Project, error) {
	var projects []api.Project
	if err := c.doRequest(ctx, c.authedClient, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("list projects request failed: %w", err)
	}
	return projects, nil
}

// GetProject возвращает проект по ID
func (c *Client) GetProject(ctx context.Context, id string) (*api.Project, error) {
	var project api.Project
	if err := c.doRequest(ctx, c.authedClient, http.MethodGet, projectPath(id), nil, &project); err != nil {
		return nil, fmt.Errorf("get project request failed: %w", err)
	}
	return &project, nil
}

// CreateProject создает проект
func (c *Client) CreateProject(ctx context.Context, in api.ProjectInput) (*api.Project, error) {
	var project api.Project
	if err := c.doRequest(ctx, c.authedClient, http.MethodPost, "/api/projects", in, &project); err != nil {
		return nil, fmt.Errorf("create project request failed: %w", err)
	}
	return &project, nil
}

// UpdateProject изменяет название и домен проекта
func (c *Client) UpdateProject(ctx context.Context, id string, in api.ProjectInput) (*api.Project, error) {
	var project api.Project
	if err := c.doRequest(ctx, c.authedClient, http.MethodPatch, projectPath(id), in, &project); err != nil {
		return nil, fmt.Errorf("update project request failed: %w", err)
	}
	return &project, nil
}

// DeleteProject удаляет проект вместе с его аудитами
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, c.authedClient, http.MethodDelete, projectPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete project request failed: %w", err)
	}
	return nil
}

// ListAudits возвращает страницу аудитов проекта
// page и limit <= 0 означают значения по умолчанию сервера
func (c *Client) ListAudits(ctx context.Context, projectID string, page, limit int) (*api.Page[api.Audit], error) {
	path := projectPath(projectID) + "/audits"

	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.Page[api.Audit]
	if err := c.doRequest(ctx, c.authedClient, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list audits request failed: %w", err)
	}
	return &resp, nil
}

// CreateAudit ставит аудит в очередь на обработку
func (c *Client) CreateAudit(ctx context.Context, projectID string, req api.CreateAuditRequest) (*api.CreateAuditResponse, error) {
	var resp api.CreateAuditResponse
	if err := c.doRequest(ctx, c.authedClient, http.MethodPost, projectPath(projectID)+"/audits", req, &resp); err != nil {
		return nil, fmt.Errorf("create audit request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, c.publicClient, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func projectPath(id string) string {
	return "/api/projects/" + url.PathEscape(id)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, httpClient *http.Client, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		// Отсутствие токена приходит из TokenSource
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrUnavailable, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	apiErr.Message = text
	return apiErr
}
