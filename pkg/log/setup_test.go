package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(resetForTest)
	resetForTest()

	dir := t.TempDir()
	opts := NewProductionOptions("dag-health-monitor")
	opts.Dir = dir

	c, err := Setup(opts)
	require.NoError(t, err)
	require.NotNil(t, c)

	WithComponent("test").Info("info message")
	WithComponentAndFields("test", Fields{"node_id": "api"}).Error("error message")

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "Close는 여러 번 호출해도 안전해야 합니다")

	mainLog, err := os.ReadFile(filepath.Join(dir, "dag-health-monitor.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "info message")
	assert.Contains(t, string(mainLog), "component=test")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "dag-health-monitor.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "node_id=api")
	assert.NotContains(t, string(criticalLog), "info message")

	t.Run("두 번째 호출은 최초 결과를 반환", func(t *testing.T) {
		again, err := Setup(Options{})
		assert.NoError(t, err)
		assert.Same(t, c, again)
	})
}

func TestOptions_Validate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"정상", Options{Name: "app"}, false},
		{"이름 누락", Options{}, true},
		{"디렉토리 경로가 파일", Options{Name: "app", Dir: file}, true},
		{"음수 보관 일수", Options{Name: "app", MaxAge: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetDebugMode(t *testing.T) {
	t.Cleanup(resetForTest)

	SetDebugMode(true)
	assert.True(t, IsLevelEnabled(TraceLevel))

	SetDebugMode(false)
	assert.False(t, IsLevelEnabled(DebugLevel))
	assert.True(t, IsLevelEnabled(InfoLevel))
}
