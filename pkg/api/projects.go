package api

import "time"

// AuditStatus описывает этап обработки аудита на сервере
type AuditStatus string

const (
	AuditStatusPending    AuditStatus = "pending"
	AuditStatusProcessing AuditStatus = "processing"
	AuditStatusDone       AuditStatus = "done"
	AuditStatusFailed     AuditStatus = "failed"
)

// AuditMode определяет источник контента для аудита
type AuditMode string

const (
	AuditModeURL     AuditMode = "url"
	AuditModeContent AuditMode = "content"
)

// DefaultAuditLanguage используется, если язык не указан явно
const DefaultAuditLanguage = "en"

// Project представляет проект пользователя
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Domain     string    `json:"domain,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	AuditCount int       `json:"auditCount"` // считается сервером, может расходиться с кэшем аудитов
}

// ProjectInput используется для создания и обновления проекта
type ProjectInput struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// Audit представляет аудит контента в рамках проекта
type Audit struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Status      AuditStatus `json:"status"`
	Mode        AuditMode   `json:"mode"`
	URL         string      `json:"url,omitempty"`
	Title       string      `json:"title,omitempty"`
	TargetQuery string      `json:"targetQuery"`
	Language    string      `json:"language,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CreateAuditRequest представляет запрос на запуск аудита
// Для mode=url обязателен URL, для mode=content обязателен Content
type CreateAuditRequest struct {
	Mode        AuditMode `json:"mode"`
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	TargetQuery string    `json:"targetQuery"`
	Language    string    `json:"language,omitempty"`
}

// CreateAuditResponse возвращается сервером после постановки аудита в очередь
type CreateAuditResponse struct {
	AuditID string      `json:"auditId"`
	Status  AuditStatus `json:"status"`
}

// Page представляет страницу списка с метаданными пагинации
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
