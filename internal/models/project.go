package models

import "time"

// Project представляет проект пользователя
type Project struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Domain     string    `json:"domain"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	AuditCount int       `json:"audit_count"` // вычисляется при чтении
}

// Audit представляет аудит внутри проекта
type Audit struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Status      string    `json:"status"`
	Mode        string    `json:"mode"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TargetQuery string    `json:"target_query"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}
