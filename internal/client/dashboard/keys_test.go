package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/optimizeai/internal/client/cache"
)

func TestEffectOf(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
		want     cache.Effect
	}{
		{
			name:     "create project",
			mutation: MutationCreateProject,
			want:     cache.Effect{Invalidate: []cache.Key{ProjectsKey()}},
		},
		{
			name:     "update project",
			mutation: MutationUpdateProject,
			want:     cache.Effect{Invalidate: []cache.Key{ProjectsKey(), ProjectKey("p1")}},
		},
		{
			name:     "delete project",
			mutation: MutationDeleteProject,
			want: cache.Effect{
				Invalidate: []cache.Key{ProjectsKey()},
				Remove:     []cache.Key{ProjectKey("p1"), ProjectAuditsKey("p1")},
			},
		},
		{
			name:     "create audit",
			mutation: MutationCreateAudit,
			want:     cache.Effect{Invalidate: []cache.Key{ProjectAuditsKey("p1")}},
		},
		{
			name:     "unknown",
			mutation: Mutation("archive project"),
			want:     cache.Effect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectOf(tt.mutation, "p1"))
		})
	}
}

func TestAuditsPageKey(t *testing.T) {
	assert.Equal(t, "project-audits/p1?page=1&limit=20", AuditsPageKey("p1", 0, 0).String())
	assert.Equal(t, "project-audits/p1?page=3&limit=5", AuditsPageKey("p1", 3, 5).String())
	assert.True(t, ProjectAuditsKey("p1").Matches(AuditsPageKey("p1", 2, 10)))
	assert.False(t, ProjectAuditsKey("p2").Matches(AuditsPageKey("p1", 2, 10)))
}
