package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/graphfile"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
	"github.com/darkkaiser/dag-health-monitor/internal/probe"
	"github.com/darkkaiser/dag-health-monitor/internal/service/healthcheck"
	"github.com/darkkaiser/dag-health-monitor/internal/store/memory"
)

// check 명령의 종료 코드
const (
	exitCodeHealthy   = 0
	exitCodeUnhealthy = 1
	exitCodeCritical  = 2
	exitCodeError     = 3
)

var (
	checkGraphFile string
	checkTimeout   time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check -f <graph file>",
	Short: "그래프 파일(JSON/YAML)을 한 번 점검하고 리포트를 출력합니다",
	Long: `그래프 파일에 정의된 모든 노드를 점검하고 리포트를 JSON으로 출력합니다.

종료 코드: 0 healthy, 1 unhealthy, 2 critical, 3 실행 오류`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := graphfile.Load(checkGraphFile)
		if err != nil {
			return err
		}

		code, err := runCheck(cmd.Context(), cmd.OutOrStdout(), graph, checkTimeout)
		if err != nil {
			return err
		}
		if code != exitCodeHealthy {
			return &exitError{code: code}
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkGraphFile, "file", "f", "", "그래프 파일 경로 (.json, .yaml, .yml)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", probe.DefaultTimeout, "노드별 프로브 타임아웃")
	_ = checkCmd.MarkFlagRequired("file")
}

// runCheck 메모리 저장소로 헬스체크를 한 번 실행하고, 리포트를 w에 출력한 뒤 종합 상태에 해당하는 종료 코드를 반환합니다.
func runCheck(ctx context.Context, w io.Writer, graph model.Graph, timeout time.Duration) (int, error) {
	prober := probe.New(probe.Config{
		Timeout:   timeout,
		UserAgent: userAgent(version.Get()),
	})
	checker := healthcheck.NewService(prober, memory.New())

	r, err := checker.Check(ctx, graph)
	if err != nil {
		return exitCodeError, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return exitCodeError, apperrors.Wrap(err, apperrors.System, "리포트 출력에 실패했습니다")
	}

	return exitCodeFor(r.OverallStatus), nil
}

func exitCodeFor(status model.OverallStatus) int {
	switch status {
	case model.OverallHealthy:
		return exitCodeHealthy
	case model.OverallUnhealthy:
		return exitCodeUnhealthy
	default:
		return exitCodeCritical
	}
}

func userAgent(info version.Info) string {
	return config.AppName + "/" + info.Version
}
