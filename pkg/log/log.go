// Package log 헬스 모니터의 구조화 로깅을 담당합니다.
//
// logrus 전역 로거 위에 레벨별 파일 분리(main/critical/verbose)와 lumberjack 기반의
// 로그 로테이션을 구성하며, 각 컴포넌트는 WithComponent로 자신의 이름을 필드에 남깁니다.
package log

import "github.com/sirupsen/logrus"

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithComponent component 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	return logrus.WithField("component", component).WithFields(fields)
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info 레벨로 전역 로그 레벨을 변경합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
		return
	}
	logrus.SetLevel(InfoLevel)
}

// IsLevelEnabled 주어진 레벨의 로그가 현재 출력되는지 여부를 반환합니다.
func IsLevelEnabled(level Level) bool {
	return logrus.IsLevelEnabled(level)
}
