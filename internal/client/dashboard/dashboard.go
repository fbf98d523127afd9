// Package dashboard exposes projects and audits to views through the shared
// entity cache. Every mutation declares the keys it makes outdated, so views
// never refresh each other by hand.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	clientapi "github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/cache"
	"github.com/iudanet/optimizeai/internal/validation"
	"github.com/iudanet/optimizeai/pkg/api"
)

//go:generate moq -out backend_mock_test.go . Backend

// Backend is the part of the API client the dashboard reads and writes through.
type Backend interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
	GetProject(ctx context.Context, id string) (*api.Project, error)
	CreateProject(ctx context.Context, in api.ProjectInput) (*api.Project, error)
	UpdateProject(ctx context.Context, id string, in api.ProjectInput) (*api.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListAudits(ctx context.Context, projectID string, page, limit int) (*api.Page[api.Audit], error)
	CreateAudit(ctx context.Context, projectID string, req api.CreateAuditRequest) (*api.CreateAuditResponse, error)
}

// IsGone reports whether a fetch error means the resource no longer exists.
// Such errors drop cached data instead of keeping it as stale.
func IsGone(err error) bool {
	return errors.Is(err, clientapi.ErrNotFound)
}

// NewCache creates the entity cache used by the dashboard.
func NewCache(logger *slog.Logger, opts ...cache.Option) (*cache.Cache, error) {
	base := []cache.Option{
		cache.WithLogger(logger),
		cache.WithClearOnError(IsGone),
	}
	return cache.New(append(base, opts...)...)
}

// Service provides typed access to projects and audits.
type Service struct {
	backend Backend
	cache   *cache.Cache
	logger  *slog.Logger
}

// NewService creates a Service on top of an existing cache.
func NewService(backend Backend, c *cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		backend: backend,
		cache:   c,
		logger:  logger,
	}
}

// Cache returns the underlying cache.
func (s *Service) Cache() *cache.Cache {
	return s.cache
}

// Reset drops all cached projects and audits, for example after sign out.
func (s *Service) Reset() {
	s.cache.Reset()
}

// Projects returns all projects of the current user.
// If a refresh fails the last known list is returned together with the error.
func (s *Service) Projects(ctx context.Context, opts ...cache.QueryOption) ([]api.Project, error) {
	return query(ctx, s.cache, ProjectsKey(), s.fetchProjects, opts...)
}

// Project returns a single project.
func (s *Service) Project(ctx context.Context, id string, opts ...cache.QueryOption) (*api.Project, error) {
	return query(ctx, s.cache, ProjectKey(id), s.fetchProject(id), opts...)
}

// Audits returns one page of a project's audits. page and limit <= 0 select
// the first page and DefaultAuditPageSize.
func (s *Service) Audits(ctx context.Context, projectID string, page, limit int, opts ...cache.QueryOption) (*api.Page[api.Audit], error) {
	return query(ctx, s.cache, AuditsPageKey(projectID, page, limit), s.fetchAudits(projectID, page, limit), opts...)
}

// WatchProjects keeps the project list live until the view is closed.
func (s *Service) WatchProjects(fn func(ViewState[[]api.Project])) (*View, error) {
	return watch(s.cache, ProjectsKey(), s.fetchProjects, fn)
}

// WatchProject keeps a single project live until the view is closed.
func (s *Service) WatchProject(id string, fn func(ViewState[*api.Project])) (*View, error) {
	return watch(s.cache, ProjectKey(id), s.fetchProject(id), fn)
}

// WatchAudits keeps a page of audits live until the view is closed.
func (s *Service) WatchAudits(projectID string, page, limit int, fn func(ViewState[*api.Page[api.Audit]])) (*View, error) {
	return watch(s.cache, AuditsPageKey(projectID, page, limit), s.fetchAudits(projectID, page, limit), fn)
}

// CreateProject validates the input, creates the project and refreshes the project list.
func (s *Service) CreateProject(ctx context.Context, in api.ProjectInput) (*api.Project, error) {
	in = normalizeProjectInput(in)
	if err := validation.ValidateProjectInput(in); err != nil {
		return nil, err
	}

	return mutate(ctx, s, MutationCreateProject, "", func(ctx context.Context) (*api.Project, error) {
		return s.backend.CreateProject(ctx, in)
	})
}

// UpdateProject validates the input and updates the project.
func (s *Service) UpdateProject(ctx context.Context, id string, in api.ProjectInput) (*api.Project, error) {
	in = normalizeProjectInput(in)
	if err := validation.ValidateProjectInput(in); err != nil {
		return nil, err
	}

	return mutate(ctx, s, MutationUpdateProject, id, func(ctx context.Context) (*api.Project, error) {
		return s.backend.UpdateProject(ctx, id, in)
	})
}

// DeleteProject deletes the project and drops its cached data and audits.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	_, err := mutate(ctx, s, MutationDeleteProject, id, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.backend.DeleteProject(ctx, id)
	})
	return err
}

// CreateAudit validates the request and queues an audit. Only the project's
// audit lists are refreshed.
func (s *Service) CreateAudit(ctx context.Context, projectID string, req api.CreateAuditRequest) (*api.CreateAuditResponse, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.TargetQuery = strings.TrimSpace(req.TargetQuery)
	if req.Language == "" {
		req.Language = api.DefaultAuditLanguage
	}
	if err := validation.ValidateAuditRequest(req); err != nil {
		return nil, err
	}

	return mutate(ctx, s, MutationCreateAudit, projectID, func(ctx context.Context) (*api.CreateAuditResponse, error) {
		return s.backend.CreateAudit(ctx, projectID, req)
	})
}

func (s *Service) fetchProjects(ctx context.Context) ([]api.Project, error) {
	return s.backend.ListProjects(ctx)
}

func (s *Service) fetchProject(id string) func(context.Context) (*api.Project, error) {
	return func(ctx context.Context) (*api.Project, error) {
		return s.backend.GetProject(ctx, id)
	}
}

func (s *Service) fetchAudits(projectID string, page, limit int) func(context.Context) (*api.Page[api.Audit], error) {
	page, limit = normalizePage(page, limit)
	return func(ctx context.Context) (*api.Page[api.Audit], error) {
		return s.backend.ListAudits(ctx, projectID, page, limit)
	}
}

func normalizeProjectInput(in api.ProjectInput) api.ProjectInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Domain = strings.ToLower(strings.TrimSpace(in.Domain))
	return in
}

// mutate выполняет запись и применяет эффект из таблицы инвалидации
func mutate[T any](ctx context.Context, s *Service, m Mutation, projectID string, op func(context.Context) (T, error)) (T, error) {
	attrs := []any{slog.String("mutation", string(m))}
	if projectID != "" {
		attrs = append(attrs, slog.String("project_id", projectID))
	}
	s.logger.DebugContext(ctx, "mutation started", attrs...)

	result, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return op(ctx)
	}, EffectOf(m, projectID))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", m, err)
	}

	typed, _ := result.(T)
	return typed, nil
}

// query читает типизированное значение из кэша
func query[T any](ctx context.Context, c *cache.Cache, key cache.Key, fetch func(context.Context) (T, error), opts ...cache.QueryOption) (T, error) {
	snap, err := c.Query(ctx, key, fetcher(fetch), opts...)
	data, _ := snap.Data.(T)
	return data, err
}

func fetcher[T any](fetch func(context.Context) (T, error)) cache.Fetcher {
	return func(ctx context.Context) (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
