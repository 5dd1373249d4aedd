package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 설정입니다.
type Options struct {
	Name  string // 로그 파일명에 사용할 애플리케이션 이름
	Dir   string // 로그 디렉토리 (비어 있으면 "logs")
	Level Level

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일당 최대 크기 (0: 100MB)
	MaxBackups int // 최대 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 별도 파일에 추가 기록
	EnableVerboseLog  bool // DEBUG 이하를 메인 로그 대신 별도 파일에 기록
	EnableConsoleLog  bool // 모든 레벨을 표준 출력에도 기록

	ReportCaller     bool
	CallerPathPrefix string // 호출 위치 출력 시 잘라낼 함수 경로 접두사
}

// Validate 설정값이 유효한지 검사합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 || opts.MaxSizeMB < 0 || opts.MaxBackups < 0 {
		return fmt.Errorf("로그 보관 정책 값은 0 이상이어야 합니다 (MaxAge=%d, MaxSizeMB=%d, MaxBackups=%d)", opts.MaxAge, opts.MaxSizeMB, opts.MaxBackups)
	}

	return nil
}
