// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 빌드 예:
//
//	go build -ldflags "-X github.com/darkkaiser/dag-health-monitor/internal/pkg/version.appVersion=v1.0.0" ./cmd/dag-health-monitor
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// 링커 플래그(-ldflags -X)로 주입됩니다. 직접 참조하지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	buildDate     = ""
)

var current atomic.Pointer[Info]

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	Set(resolve(Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
	}))
}

// Info 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Dirty     bool   `json:"dirty"`
}

// Get 현재 빌드 정보를 반환합니다.
func Get() Info {
	if p := current.Load(); p != nil {
		return *p
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown}
}

// Set 빌드 정보를 교체합니다. 애플리케이션 시작 시 또는 테스트에서만 호출합니다.
func Set(i Info) {
	current.Store(&i)
}

// Version 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// resolve 비어 있는 필드를 런타임 정보와 VCS 메타데이터로 채웁니다.
func resolve(i Info) Info {
	i.GoVersion = runtime.Version()
	i.OS = runtime.GOOS
	i.Arch = runtime.GOARCH

	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if i.Commit == "" {
					i.Commit = s.Value
				}
			case "vcs.time":
				if i.BuildDate == "" {
					i.BuildDate = s.Value
				}
			case "vcs.modified":
				i.Dirty = i.Dirty || s.Value == "true"
			}
		}
		if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			i.Version = bi.Main.Version
		}
	}

	if i.Version == "" {
		i.Version = unknown
	}
	if i.Commit == "" {
		i.Commit = unknown
	}
	if i.BuildDate == "" {
		i.BuildDate = unknown
	}
	return i
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":    i.Version,
		"commit":     i.Commit,
		"build_date": i.BuildDate,
		"go_version": i.GoVersion,
		"dirty":      i.Dirty,
	}
}

// String 예: "v1.0.0+dirty (commit: f25b8bf, go1.24.0 linux/amd64)"
func (i Info) String() string {
	v := i.Version
	if i.Dirty {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		details = append(details, "commit: "+shortCommit(i.Commit))
	}
	if i.GoVersion != "" {
		details = append(details, fmt.Sprintf("%s %s/%s", i.GoVersion, i.OS, i.Arch))
	}
	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
