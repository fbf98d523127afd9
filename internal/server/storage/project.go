package storage

import (
	"context"

	"github.com/iudanet/optimizeai/internal/models"
)

// ProjectStorage defines interface for projects persistence
// All reads and writes are scoped to the owner
type ProjectStorage interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, project *models.Project) error

	// GetProject retrieves a project with its audit count
	// Returns ErrProjectNotFound if project doesn't exist or has another owner
	GetProject(ctx context.Context, ownerID, projectID string) (*models.Project, error)

	// ListProjects retrieves all projects of the owner, newest first
	// Returns empty slice if no projects found
	ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error)

	// UpdateProject updates name, domain and updated_at
	// Returns ErrProjectNotFound if project doesn't exist or has another owner
	UpdateProject(ctx context.Context, project *models.Project) error

	// DeleteProject deletes a project together with its audits
	// Returns ErrProjectNotFound if project doesn't exist or has another owner
	DeleteProject(ctx context.Context, ownerID, projectID string) error
}

// AuditStorage defines interface for audits persistence
type AuditStorage interface {
	// CreateAudit creates a new audit
	CreateAudit(ctx context.Context, audit *models.Audit) error

	// ListAudits retrieves a page of project audits, newest first, and the total count
	ListAudits(ctx context.Context, projectID string, offset, limit int) ([]*models.Audit, int, error)
}
