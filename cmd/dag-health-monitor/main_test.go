package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/events"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
	"github.com/darkkaiser/dag-health-monitor/internal/service/alert"
	"github.com/darkkaiser/dag-health-monitor/internal/store/file"
	"github.com/darkkaiser/dag-health-monitor/internal/store/memory"
	"github.com/darkkaiser/dag-health-monitor/internal/testutil"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

func TestRunCheck_종료_코드(t *testing.T) {
	up := testutil.NewNodeServer(t, http.StatusOK, 0)
	down := testutil.NewNodeServer(t, http.StatusInternalServerError, 0)

	tests := []struct {
		name     string
		nodes    []model.Node
		wantCode int
		wantStat model.OverallStatus
	}{
		{
			name:     "모두 정상",
			nodes:    []model.Node{up.Node("a"), up.Node("b")},
			wantCode: exitCodeHealthy,
			wantStat: model.OverallHealthy,
		},
		{
			name:     "일부 비정상",
			nodes:    []model.Node{up.Node("a"), up.Node("b"), down.Node("c")},
			wantCode: exitCodeUnhealthy,
			wantStat: model.OverallUnhealthy,
		},
		{
			name:     "모두 비정상",
			nodes:    []model.Node{down.Node("a"), down.Node("b")},
			wantCode: exitCodeCritical,
			wantStat: model.OverallCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			code, err := runCheck(context.Background(), &out, model.Graph{Nodes: tt.nodes}, time.Second)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)

			var r model.HealthReport
			require.NoError(t, json.Unmarshal(out.Bytes(), &r))
			assert.Equal(t, tt.wantStat, r.OverallStatus)
			assert.Len(t, r.Nodes, len(tt.nodes))
		})
	}
}

func TestRun_check_명령(t *testing.T) {
	up := testutil.NewNodeServer(t, http.StatusOK, 0)

	path := filepath.Join(t.TempDir(), "graph.yaml")
	content := "nodes:\n" +
		"  - id: api\n    name: API\n    health_endpoint: " + up.HealthURL() + "\n" +
		"edges: []\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	assert.Equal(t, exitCodeHealthy, run([]string{"check", "-f", path, "--timeout", "2s"}))
	assert.Equal(t, exitCodeError, run([]string{"check", "-f", filepath.Join(t.TempDir(), "missing.yaml")}))
}

func TestRun_version_명령(t *testing.T) {
	assert.Equal(t, 0, run([]string{"version"}))
	assert.Equal(t, 0, run([]string{"version", "--json"}))
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, exitCodeHealthy, exitCodeFor(model.OverallHealthy))
	assert.Equal(t, exitCodeUnhealthy, exitCodeFor(model.OverallUnhealthy))
	assert.Equal(t, exitCodeCritical, exitCodeFor(model.OverallCritical))
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "dag-health-monitor/v1.2.3", userAgent(version.Info{Version: "v1.2.3"}))
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	s, err := newStore(ctx, config.StoreConfig{Driver: config.StoreDriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	s, err = newStore(ctx, config.StoreConfig{Driver: config.StoreDriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, s)

	_, err = newStore(ctx, config.StoreConfig{Driver: "mongo"})
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestNewPublisher_미설정(t *testing.T) {
	p, err := newPublisher(config.EventsConfig{})

	require.NoError(t, err)
	assert.IsType(t, events.NoopPublisher{}, p)
}

func TestNewNotifier_비활성(t *testing.T) {
	n, err := newNotifier(config.AlertConfig{MinStatus: "critical"}, false)

	require.NoError(t, err)
	assert.IsType(t, alert.Nop{}, n)
}

func TestLogOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Dir = "custom-logs"
	cfg.Log.Level = "warn"
	cfg.Log.MaxAgeDays = 7
	cfg.Log.Console = true

	opts := logOptions(&cfg)

	assert.Equal(t, config.AppName, opts.Name)
	assert.Equal(t, "custom-logs", opts.Dir)
	assert.Equal(t, applog.WarnLevel, opts.Level)
	assert.Equal(t, 7, opts.MaxAge)
	assert.True(t, opts.EnableConsoleLog)

	cfg.Debug = true
	cfg.Log.Level = ""
	assert.Equal(t, applog.TraceLevel, logOptions(&cfg).Level)
}
