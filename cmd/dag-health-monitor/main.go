package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title DAG Health Monitor API
// @version 1.0
// @description 서비스 의존성 그래프(DAG)의 각 노드 헬스 엔드포인트를 동시에 점검하고 결과 이력을 제공합니다.
// @description
// @description ## 주요 기능
// @description - 그래프 BFS 순회 순서 결정
// @description - 노드별 헬스 엔드포인트 동시 점검 (노드당 10초 타임아웃)
// @description - 종합 상태 판정 (healthy, unhealthy, critical)
// @description - 최근 100건의 점검 이력 조회
// @BasePath /

const banner = `
  ____    _    ____   _   _            _ _   _
 |  _ \  / \  / ___| | | | | ___  __ _| | |_| |__
 | | | |/ _ \| |  _  | |_| |/ _ \/ _' | | __| '_ \
 | |_| / ___ \ |_| | |  _  |  __/ (_| | | |_| | | |
 |____/_/   \_\____| |_| |_|\___|\__,_|_|\__|_| |_|   %s
--------------------------------------------------------------------------------
`

// exitError 특정 종료 코드로 프로세스를 끝내야 하는 결과입니다. 메시지 출력 없이 종료 코드만 전달합니다.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:           "dag-health-monitor <command>",
	Short:         "서비스 의존성 그래프 헬스체크 서버 및 CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, checkCmd, versionCmd)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run 명령을 실행하고 프로세스 종료 코드를 반환합니다.
func run(args []string) int {
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	return exitCodeError
}
