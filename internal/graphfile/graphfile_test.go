package graphfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

const graphJSON = `{
	"nodes": [
		{"id": "frontend", "name": "Frontend", "health_endpoint": "http://frontend/health", "dependencies": ["api"], "owner": "web-team"},
		{"id": "api", "name": "API", "health_endpoint": "http://api/health"}
	],
	"edges": [{"from": "frontend", "to": "api"}]
}`

const graphYAML = `
nodes:
  - id: frontend
    name: Frontend
    health_endpoint: http://frontend/health
    dependencies: [api]
  - id: api
    name: API
    health_endpoint: http://api/health
edges:
  - from: frontend
    to: api
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct{ name, content string }{
		{"graph.json", graphJSON},
		{"graph.yaml", graphYAML},
		{"graph.YML", graphYAML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Load(writeFile(t, tc.name, tc.content))

			require.NoError(t, err)
			require.Len(t, g.Nodes, 2)
			assert.Equal(t, "frontend", g.Nodes[0].ID)
			assert.Equal(t, "http://frontend/health", g.Nodes[0].HealthEndpoint)
			assert.Equal(t, []string{"api"}, g.Nodes[0].Dependencies)
			require.Len(t, g.Edges, 1)
			assert.Equal(t, "api", g.Edges[0].To)
		})
	}
}

func TestLoad_파일_없음(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestLoad_지원하지_않는_확장자(t *testing.T) {
	_, err := Load(writeFile(t, "graph.toml", "nodes = []"))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Contains(t, err.Error(), ".toml")
}

func TestLoad_잘못된_내용(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"깨진 JSON", "g.json", `{"nodes": [`},
		{"깨진 YAML", "g.yaml", "nodes: [\n  - id: a\n   bad"},
		{"필수 필드 누락", "g.json", `{"nodes": [{"id": "a"}]}`},
		{"중복 노드", "g.yaml", "nodes:\n  - {id: a, name: A, health_endpoint: http://a}\n  - {id: a, name: A, health_endpoint: http://a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		})
	}
}
