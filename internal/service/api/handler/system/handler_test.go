package system

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var testBuildInfo = version.Info{
	Version:   "v1.2.3",
	Commit:    "abc1234",
	BuildDate: "2026-05-01",
	GoVersion: "go1.24.0",
}

func call(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func TestRootHandler(t *testing.T) {
	h := NewHandler(nil, testBuildInfo)

	rec := call(t, h.RootHandler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DAG Health Monitoring Service", gjson.Get(rec.Body.String(), "message").String())
	assert.Equal(t, "v1.2.3", gjson.Get(rec.Body.String(), "version").String())
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus string
		wantMsg    string
	}{
		{
			name:       "저장소 정상",
			pinger:     pingerFunc(func(context.Context) error { return nil }),
			wantStatus: "healthy",
			wantMsg:    "정상 작동 중",
		},
		{
			name:       "저장소 장애",
			pinger:     pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantStatus: "unhealthy",
			wantMsg:    "connection refused",
		},
		{
			name:       "저장소 미초기화",
			pinger:     nil,
			wantStatus: "unhealthy",
			wantMsg:    "저장소가 초기화되지 않았습니다",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, NewHandler(tt.pinger, testBuildInfo).HealthCheckHandler)
			body := rec.Body.String()

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantStatus, gjson.Get(body, "status").String())
			assert.Equal(t, tt.wantStatus, gjson.Get(body, "dependencies.store.status").String())
			assert.Equal(t, tt.wantMsg, gjson.Get(body, "dependencies.store.message").String())
			assert.True(t, gjson.Get(body, "uptime").Exists())
		})
	}
}

func TestHealthCheckHandler_Ping_타임아웃_설정(t *testing.T) {
	var hasDeadline bool
	h := NewHandler(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}), testBuildInfo)

	call(t, h.HealthCheckHandler)

	assert.True(t, hasDeadline)
}

func TestVersionHandler(t *testing.T) {
	rec := call(t, NewHandler(nil, testBuildInfo).VersionHandler)
	body := rec.Body.String()

	assert.Equal(t, "v1.2.3", gjson.Get(body, "version").String())
	assert.Equal(t, "abc1234", gjson.Get(body, "commit").String())
	assert.Equal(t, "2026-05-01", gjson.Get(body, "build_date").String())
	assert.Equal(t, "go1.24.0", gjson.Get(body, "go_version").String())
	assert.False(t, gjson.Get(body, "dirty").Exists())
}
