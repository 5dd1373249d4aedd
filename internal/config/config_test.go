package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// clearEnv 테스트 결과에 영향을 주는 환경 변수를 비웁니다.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CORS_ORIGINS", "DATABASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadWithFile_기본값(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithFile(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTP.ListenPort)
	assert.Equal(t, 10*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "critical", cfg.Alert.MinStatus)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Scheduler.Jobs)
}

func TestLoadWithFile_파일_없이(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithFile("")

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.HTTP.ListenPort)
}

func TestLoadWithFile_설정_파일(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithFile(writeConfig(t, `{
		"debug": true,
		"http": {"listen_port": 9090, "request_timeout": "45s", "swagger": true},
		"cors": {"allow_origins": ["https://ops.example.com", "http://localhost:3000"]},
		"probe": {"timeout": "3s", "max_concurrency": 16},
		"store": {"driver": "file", "dir": "/var/lib/dagmon"},
		"events": {"nats_url": "nats://127.0.0.1:4222"},
		"alert": {"min_status": "unhealthy"},
		"scheduler": {"jobs": [{"id": "core", "time_spec": "0 */5 * * * *", "graph_file": "core.yaml"}]}
	}`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.HTTP.ListenPort)
	assert.Equal(t, 45*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "2M", cfg.HTTP.BodyLimit, "파일에 없는 값은 기본값 유지")
	assert.True(t, cfg.HTTP.Swagger)
	assert.Equal(t, []string{"https://ops.example.com", "http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 3*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 16, cfg.Probe.MaxConcurrency)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Events.NATSURL)
	require.Len(t, cfg.Scheduler.Jobs, 1)
	assert.Equal(t, "core.yaml", cfg.Scheduler.Jobs[0].GraphFile)
}

func TestLoadWithFile_환경_변수(t *testing.T) {
	clearEnv(t)
	t.Setenv("DAGMON_HTTP__LISTEN_PORT", "7000")
	t.Setenv("DAGMON_PROBE__TIMEOUT", "2s")
	t.Setenv("DAGMON_METRICS__ENABLED", "false")

	cfg, err := LoadWithFile(writeConfig(t, `{"http": {"listen_port": 9090}}`))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.HTTP.ListenPort, "환경 변수가 설정 파일보다 우선")
	assert.Equal(t, 2*time.Second, cfg.Probe.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadWithFile_호환_환경_변수(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DATABASE_URL", "postgres://dag:secret@db:5432/dag?sslmode=disable")

	cfg, err := LoadWithFile(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver, "DATABASE_URL이 있으면 postgres 저장소")
	assert.Equal(t, "postgres://dag:secret@db:5432/dag?sslmode=disable", cfg.Store.DatabaseURL)
}

func TestLoadWithFile_빈_호환_환경_변수는_무시(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", " , ")
	t.Setenv("DATABASE_URL", "  ")

	cfg, err := LoadWithFile(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.Store.DatabaseURL)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
}

func TestLoadWithFile_오류(t *testing.T) {
	clearEnv(t)

	t.Run("파일 없음", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"잘못된 JSON", `{"http": `, ""},
		{"정의되지 않은 키", `{"unknown_section": {}}`, "unknown_section"},
		{"포트 범위", `{"http": {"listen_port": 70000}}`, "http.listen_port"},
		{"CORS 형식", `{"cors": {"allow_origins": ["example.com"]}}`, "CORS Origin"},
		{"CORS 와일드카드 혼용", `{"cors": {"allow_origins": ["*", "https://a.com"]}}`, "와일드카드"},
		{"저장소 드라이버", `{"store": {"driver": "mongo"}}`, "store.driver"},
		{"postgres에 URL 없음", `{"store": {"driver": "postgres"}}`, "store.database_url"},
		{"알림 기준", `{"alert": {"min_status": "healthy"}}`, "alert.min_status"},
		{"텔레그램 토큰 누락", `{"alert": {"telegram": {"enabled": true, "chat_id": 1}}}`, "alert.telegram.bot_token"},
		{"Cron 표현식", `{"scheduler": {"jobs": [{"id": "a", "time_spec": "*/5 * * * *", "graph_file": "g.json"}]}}`, "Cron"},
		{"작업 ID 중복", `{"scheduler": {"jobs": [
			{"id": "a", "time_spec": "@every 1m", "graph_file": "g.json"},
			{"id": "a", "time_spec": "@every 1m", "graph_file": "g.json"}]}}`, "중복"},
		{"요청 타임아웃이 프로브 타임아웃보다 짧음", `{"http": {"request_timeout": "5s"}, "probe": {"timeout": "10s"}}`, "프로브 타임아웃"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestVerifyRecommendations(t *testing.T) {
	cfg := Default()
	cfg.HTTP.ListenPort = 80
	cfg.Store.Driver = StoreDriverMemory
	cfg.Scheduler.Jobs = []JobConfig{{ID: "a", TimeSpec: "@every 1m", GraphFile: "g.json"}}

	assert.Len(t, cfg.VerifyRecommendations(), 3)

	cfg.HTTP.ListenPort = 8000
	cfg.Store.Driver = StoreDriverPostgres
	assert.Empty(t, cfg.VerifyRecommendations())
}

func TestVerifyRecommendations_동시_실행_제한(t *testing.T) {
	cfg := Default()
	cfg.Store.Driver = StoreDriverPostgres
	cfg.HTTP.RequestTimeout = 30 * time.Second
	cfg.Probe.Timeout = 10 * time.Second
	cfg.Probe.MaxConcurrency = 4

	warnings := cfg.VerifyRecommendations()

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "노드가 12개를 넘는 그래프")
	assert.Contains(t, warnings[0], "30s")
}
