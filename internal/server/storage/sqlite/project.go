package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/optimizeai/internal/models"
	"github.com/iudanet/optimizeai/internal/server/storage"
)

const projectSelect = `
	SELECT p.id, p.owner_id, p.name, p.domain, p.created_at, p.updated_at,
		(SELECT COUNT(*) FROM audits a WHERE a.project_id = p.id)
	FROM projects p
`

// CreateProject creates a new project
func (s *Storage) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, name, domain, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		project.ID,
		project.OwnerID,
		project.Name,
		project.Domain,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// GetProject retrieves a project with its audit count
func (s *Storage) GetProject(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	query := projectSelect + ` WHERE p.id = ? AND p.owner_id = ?`

	project, err := scanProject(s.db.QueryRowContext(ctx, query, projectID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ListProjects retrieves all projects of the owner, newest first
func (s *Storage) ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error) {
	query := projectSelect + ` WHERE p.owner_id = ? ORDER BY p.created_at DESC, p.id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return projects, nil
}

// UpdateProject updates name, domain and updated_at
func (s *Storage) UpdateProject(ctx context.Context, project *models.Project) error {
	query := `UPDATE projects SET name = ?, domain = ?, updated_at = ? WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		project.Name,
		project.Domain,
		project.UpdatedAt,
		project.ID,
		project.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return rowsAffectedOr(result, storage.ErrProjectNotFound)
}

// DeleteProject deletes a project, audits are removed by ON DELETE CASCADE
func (s *Storage) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND owner_id = ?`, projectID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return rowsAffectedOr(result, storage.ErrProjectNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.Domain,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.AuditCount,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}
