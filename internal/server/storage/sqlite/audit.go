package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/optimizeai/internal/models"
)

// CreateAudit creates a new audit
func (s *Storage) CreateAudit(ctx context.Context, audit *models.Audit) error {
	query := `
		INSERT INTO audits (id, project_id, status, mode, url, title, content, target_query, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		audit.ID,
		audit.ProjectID,
		audit.Status,
		audit.Mode,
		audit.URL,
		audit.Title,
		audit.Content,
		audit.TargetQuery,
		audit.Language,
		audit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}

	return nil
}

// ListAudits retrieves a page of project audits, newest first, and the total count
func (s *Storage) ListAudits(ctx context.Context, projectID string, offset, limit int) ([]*models.Audit, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audits WHERE project_id = ?`, projectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audits: %w", err)
	}

	query := `
		SELECT id, project_id, status, mode, url, title, content, target_query, language, created_at
		FROM audits
		WHERE project_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	audits := make([]*models.Audit, 0, limit)
	for rows.Next() {
		audit := &models.Audit{}
		if err := rows.Scan(
			&audit.ID,
			&audit.ProjectID,
			&audit.Status,
			&audit.Mode,
			&audit.URL,
			&audit.Title,
			&audit.Content,
			&audit.TargetQuery,
			&audit.Language,
			&audit.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, audit)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return audits, total, nil
}
