package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/optimizeai/internal/models"
	"github.com/iudanet/optimizeai/internal/server/storage"
	"github.com/iudanet/optimizeai/internal/validation"
	"github.com/iudanet/optimizeai/pkg/api"
)

const (
	// DefaultPageLimit размер страницы аудитов по умолчанию
	DefaultPageLimit = 20
	// MaxPageLimit максимальный размер страницы аудитов
	MaxPageLimit = 100
)

// ProjectHandler обрабатывает запросы к проектам и аудитам
type ProjectHandler struct {
	responder
	projects storage.ProjectStorage
	audits   storage.AuditStorage
	now      func() time.Time
}

// NewProjectHandler создает новый handler для проектов
func NewProjectHandler(logger *slog.Logger, projects storage.ProjectStorage, audits storage.AuditStorage) *ProjectHandler {
	return &ProjectHandler{
		responder: responder{logger: logger},
		projects:  projects,
		audits:    audits,
		now:       time.Now,
	}
}

// List обрабатывает GET /api/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	projects, err := h.projects.ListProjects(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list projects", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toAPIProject(p))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	h.sendJSON(w, toAPIProject(project), http.StatusOK)
}

// Create обрабатывает POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	in, ok := h.decodeProjectInput(w, r)
	if !ok {
		return
	}

	now := h.now()
	project := &models.Project{
		ID:        uuid.New().String(),
		OwnerID:   userID,
		Name:      in.Name,
		Domain:    in.Domain,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.projects.CreateProject(ctx, project); err != nil {
		h.logger.ErrorContext(ctx, "failed to create project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "project created",
		slog.String("user_id", userID),
		slog.String("project_id", project.ID))

	h.sendJSON(w, toAPIProject(project), http.StatusCreated)
}

// Update обрабатывает PATCH /api/projects/{id}
// Название и домен заменяются целиком
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	in, ok := h.decodeProjectInput(w, r)
	if !ok {
		return
	}

	project.Name = in.Name
	project.Domain = in.Domain
	project.UpdatedAt = h.now()

	if err := h.projects.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			h.sendError(w, "project not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, toAPIProject(project), http.StatusOK)
}

// Delete обрабатывает DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	projectID := r.PathValue("id")
	if err := h.projects.DeleteProject(ctx, userID, projectID); err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			h.sendError(w, "project not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "project deleted",
		slog.String("user_id", userID),
		slog.String("project_id", projectID))
	w.WriteHeader(http.StatusNoContent)
}

// ListAudits обрабатывает GET /api/projects/{id}/audits?page=&limit=
func (h *ProjectHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit, err := parsePage(r)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	audits, total, err := h.audits.ListAudits(ctx, project.ID, (page-1)*limit, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audits", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.Page[api.Audit]{
		Data:       make([]api.Audit, 0, len(audits)),
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
	for _, a := range audits {
		resp.Data = append(resp.Data, toAPIAudit(a))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// CreateAudit обрабатывает POST /api/projects/{id}/audits
// Аудит ставится в очередь со статусом pending
func (h *ProjectHandler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	var req api.CreateAuditRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateAuditRequest(req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = api.DefaultAuditLanguage
	}

	audit := &models.Audit{
		ID:          uuid.New().String(),
		ProjectID:   project.ID,
		Status:      string(api.AuditStatusPending),
		Mode:        string(req.Mode),
		URL:         strings.TrimSpace(req.URL),
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		TargetQuery: strings.TrimSpace(req.TargetQuery),
		Language:    language,
		CreatedAt:   h.now(),
	}

	if err := h.audits.CreateAudit(ctx, audit); err != nil {
		h.logger.ErrorContext(ctx, "failed to create audit", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "audit queued",
		slog.String("project_id", project.ID),
		slog.String("audit_id", audit.ID),
		slog.String("mode", audit.Mode))

	h.sendJSON(w, api.CreateAuditResponse{AuditID: audit.ID, Status: api.AuditStatusPending}, http.StatusAccepted)
}

// loadProject загружает проект из пути запроса с проверкой владельца
func (h *ProjectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return nil, false
	}

	project, err := h.projects.GetProject(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			h.sendError(w, "project not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "failed to get project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return project, true
}

func (h *ProjectHandler) decodeProjectInput(w http.ResponseWriter, r *http.Request) (api.ProjectInput, bool) {
	var in api.ProjectInput
	if err := h.decodeJSON(w, r, &in); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return in, false
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Domain = strings.ToLower(strings.TrimSpace(in.Domain))
	if err := validation.ValidateProjectInput(in); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return in, false
	}

	return in, true
}

// parsePage читает page и limit из query; пустые значения заменяются значениями по умолчанию
func parsePage(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	page, limit := 1, DefaultPageLimit

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
		page = n
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPageLimit {
			return 0, 0, errors.New("limit must be between 1 and 100")
		}
		limit = n
	}

	return page, limit, nil
}

func toAPIProject(p *models.Project) api.Project {
	return api.Project{
		ID:         p.ID,
		Name:       p.Name,
		Domain:     p.Domain,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		AuditCount: p.AuditCount,
	}
}

func toAPIAudit(a *models.Audit) api.Audit {
	return api.Audit{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		Status:      api.AuditStatus(a.Status),
		Mode:        api.AuditMode(a.Mode),
		URL:         a.URL,
		Title:       a.Title,
		TargetQuery: a.TargetQuery,
		Language:    a.Language,
		CreatedAt:   a.CreatedAt,
	}
}
