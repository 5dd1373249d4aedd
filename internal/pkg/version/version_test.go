package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolve(t *testing.T) {
	t.Run("주입된 값 우선", func(t *testing.T) {
		withBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffff"},
			{Key: "vcs.modified", Value: "true"},
		}})

		got := resolve(Info{Version: "v1.2.3", Commit: "abc1234"})

		assert.Equal(t, "v1.2.3", got.Version)
		assert.Equal(t, "abc1234", got.Commit)
		assert.True(t, got.Dirty)
		assert.Equal(t, runtime.Version(), got.GoVersion)
	})

	t.Run("VCS 메타데이터로 보강", func(t *testing.T) {
		withBuildInfo(t, &debug.BuildInfo{
			Main: debug.Module{Version: "v0.9.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "deadbeefcafe"},
				{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
			},
		})

		got := resolve(Info{})

		assert.Equal(t, "v0.9.0", got.Version)
		assert.Equal(t, "deadbeefcafe", got.Commit)
		assert.Equal(t, "2026-01-01T00:00:00Z", got.BuildDate)
		assert.False(t, got.Dirty)
	})

	t.Run("정보가 없으면 unknown", func(t *testing.T) {
		withBuildInfo(t, nil)

		got := resolve(Info{})

		assert.Equal(t, unknown, got.Version)
		assert.Equal(t, unknown, got.Commit)
		assert.Equal(t, unknown, got.BuildDate)
	})
}

func TestInfo_String(t *testing.T) {
	i := Info{Version: "v1.0.0", Commit: "f25b8bf0123", GoVersion: "go1.24.0", OS: "linux", Arch: "amd64", Dirty: true}
	assert.Equal(t, "v1.0.0+dirty (commit: f25b8bf, go1.24.0 linux/amd64)", i.String())

	assert.Equal(t, "v1.0.0", Info{Version: "v1.0.0", Commit: unknown}.String())
}

func TestSetGet(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })

	Set(Info{Version: "v9.9.9"})
	assert.Equal(t, "v9.9.9", Version())
}
