package dashboard

import (
	"fmt"

	"github.com/iudanet/optimizeai/internal/client/cache"
)

// Области ключей кэша
const (
	ScopeProjects      = "projects"
	ScopeProject       = "project"
	ScopeProjectAudits = "project-audits"
)

// DefaultAuditPageSize размер страницы аудитов, если limit не указан
const DefaultAuditPageSize = 20

// ProjectsKey is the list of all projects of the signed-in user.
func ProjectsKey() cache.Key {
	return cache.Key{Scope: ScopeProjects}
}

// ProjectKey is a single project.
func ProjectKey(id string) cache.Key {
	return cache.Key{Scope: ScopeProject, ID: id}
}

// ProjectAuditsKey selects every cached page of a project's audits.
func ProjectAuditsKey(projectID string) cache.Key {
	return cache.Key{Scope: ScopeProjectAudits, ID: projectID}
}

// AuditsPageKey is one page of a project's audits.
func AuditsPageKey(projectID string, page, limit int) cache.Key {
	page, limit = normalizePage(page, limit)
	return cache.Key{
		Scope:  ScopeProjectAudits,
		ID:     projectID,
		Params: fmt.Sprintf("page=%d&limit=%d", page, limit),
	}
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}
	return page, limit
}

// Mutation names a write the dashboard can perform.
type Mutation string

const (
	MutationCreateProject Mutation = "create project"
	MutationUpdateProject Mutation = "update project"
	MutationDeleteProject Mutation = "delete project"
	MutationCreateAudit   Mutation = "create audit"
)

type keyFunc func(projectID string) cache.Key

func allProjects(string) cache.Key { return ProjectsKey() }

type effectRule struct {
	invalidate []keyFunc
	remove     []keyFunc
}

// effects описывает, какие ключи устаревают после успешной мутации.
// Создание аудита не трогает проекты: auditCount может отставать до следующей загрузки.
var effects = map[Mutation]effectRule{
	MutationCreateProject: {
		invalidate: []keyFunc{allProjects},
	},
	MutationUpdateProject: {
		invalidate: []keyFunc{allProjects, ProjectKey},
	},
	MutationDeleteProject: {
		invalidate: []keyFunc{allProjects},
		remove:     []keyFunc{ProjectKey, ProjectAuditsKey},
	},
	MutationCreateAudit: {
		invalidate: []keyFunc{ProjectAuditsKey},
	},
}

// EffectOf returns the cache effect of a successful mutation on projectID.
// Unknown mutations affect nothing.
func EffectOf(m Mutation, projectID string) cache.Effect {
	rule := effects[m]

	var effect cache.Effect
	for _, key := range rule.invalidate {
		effect.Invalidate = append(effect.Invalidate, key(projectID))
	}
	for _, key := range rule.remove {
		effect.Remove = append(effect.Remove, key(projectID))
	}
	return effect
}
