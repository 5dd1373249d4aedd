package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHook() (*hook, *safeBuffer, *safeBuffer, *safeBuffer) {
	main, critical, verbose := &safeBuffer{}, &safeBuffer{}, &safeBuffer{}
	h := &hook{
		mainWriter:     main,
		criticalWriter: critical,
		verboseWriter:  verbose,
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}
	return h, main, critical, verbose
}

func fire(t *testing.T, h *hook, level Level, msg string) {
	t.Helper()
	entry := logrus.NewEntry(logrus.New())
	entry.Level = level
	entry.Message = msg
	require.NoError(t, h.Fire(entry))
}

func TestHook_레벨별_분배(t *testing.T) {
	h, main, critical, verbose := newTestHook()

	fire(t, h, InfoLevel, "probe completed")
	fire(t, h, ErrorLevel, "store unavailable")
	fire(t, h, DebugLevel, "bfs queue state")

	assert.Contains(t, main.String(), "probe completed")
	assert.Contains(t, main.String(), "store unavailable")
	assert.NotContains(t, main.String(), "bfs queue state")

	assert.Contains(t, critical.String(), "store unavailable")
	assert.NotContains(t, critical.String(), "probe completed")

	assert.Contains(t, verbose.String(), "bfs queue state")
	assert.NotContains(t, verbose.String(), "probe completed")
}

func TestHook_종료_이후_기록_무시(t *testing.T) {
	h, main, _, _ := newTestHook()

	require.NoError(t, h.Close())
	fire(t, h, InfoLevel, "after close")

	assert.Empty(t, main.String())
}

func TestHook_쓰기_실패시_첫번째_에러_반환(t *testing.T) {
	h, main, _, _ := newTestHook()
	h.criticalWriter = failWriter{}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = ErrorLevel
	entry.Message = "boom"

	assert.EqualError(t, h.Fire(entry), "disk full")
	assert.Contains(t, main.String(), "boom", "critical 실패와 관계없이 main에는 기록되어야 합니다")
}
