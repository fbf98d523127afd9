package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/optimizeai/pkg/api"
)

// DomainPattern определяет допустимый формат домена проекта
var DomainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)

const (
	// MaxProjectNameLen максимальная длина названия проекта
	MaxProjectNameLen = 100
	// MaxTargetQueryLen максимальная длина целевого запроса аудита
	MaxTargetQueryLen = 500
)

// ValidateProjectInput проверяет данные для создания или обновления проекта
func ValidateProjectInput(in api.ProjectInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("project name is required")
	}

	if utf8.RuneCountInString(name) > MaxProjectNameLen {
		return invalid("project name must not exceed %d characters", MaxProjectNameLen)
	}

	if in.Domain != "" && !DomainPattern.MatchString(in.Domain) {
		return invalid("domain %q is not a valid host name", in.Domain)
	}

	return nil
}

// ValidateAuditRequest проверяет запрос на запуск аудита
// mode=url требует абсолютный http(s) URL, mode=content требует непустой контент
func ValidateAuditRequest(req api.CreateAuditRequest) error {
	switch req.Mode {
	case api.AuditModeURL:
		if strings.TrimSpace(req.URL) == "" {
			return invalid("URL is required")
		}
		u, err := url.Parse(req.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("please enter a valid URL")
		}
	case api.AuditModeContent:
		if strings.TrimSpace(req.Content) == "" {
			return invalid("content is required")
		}
	default:
		return invalid("unknown audit mode %q", req.Mode)
	}

	query := strings.TrimSpace(req.TargetQuery)
	if query == "" {
		return invalid("target query is required")
	}

	if utf8.RuneCountInString(query) > MaxTargetQueryLen {
		return invalid("target query must not exceed %d characters", MaxTargetQueryLen)
	}

	return nil
}
