package middleware

import (
	"io"

	"github.com/labstack/gommon/log"

	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// Logger Echo 내부 로그를 애플리케이션 로거로 보내는 gommon log.Logger 어댑터입니다.
//
// Print, Debug, Infof 등 대부분의 메서드는 임베딩된 logrus Logger의 것을 그대로 사용하고,
// 시그니처가 다른 메서드만 여기서 구현합니다.
type Logger struct {
	*applog.Logger
}

func (l Logger) Output() io.Writer { return l.Logger.Out }

func (l Logger) Prefix() string { return "" }

// SetPrefix Echo의 접두사 기능은 사용하지 않습니다.
func (l Logger) SetPrefix(string) {}

// SetHeader Echo의 헤더 포맷 기능은 사용하지 않습니다.
func (l Logger) SetHeader(string) {}

// Level 대응하는 레벨이 없으면(Trace, Fatal, Panic) OFF를 반환합니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.GetLevel() {
	case applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	}
}

func (l Logger) Printj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Print() }
func (l Logger) Debugj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Debug() }
func (l Logger) Infoj(j log.JSON)  { l.Logger.WithFields(applog.Fields(j)).Info() }
func (l Logger) Warnj(j log.JSON)  { l.Logger.WithFields(applog.Fields(j)).Warn() }
func (l Logger) Errorj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Error() }
func (l Logger) Fatalj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Fatal() }
func (l Logger) Panicj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Panic() }
