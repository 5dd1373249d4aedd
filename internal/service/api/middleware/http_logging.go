package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// HTTPLogger 요청 하나가 끝날 때마다 접근 로그를 남깁니다.
//
// 핸들러 에러는 이 미들웨어에서 c.Error로 처리하므로 로그의 status에 최종 응답 코드가 기록됩니다.
// 5xx 응답은 Warn, 그 외는 Info 레벨입니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			entry := applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
				"method":     c.Request().Method,
				"route":      c.Path(),
				"uri":        c.Request().RequestURI,
				"remote_ip":  c.RealIP(),
				"status":     res.Status,
				"bytes":      res.Size,
				"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
				"request_id": res.Header().Get(echo.HeaderXRequestID),
			})
			if res.Status >= http.StatusInternalServerError {
				entry.Warn(constants.LogMsgHTTPRequest)
			} else {
				entry.Info(constants.LogMsgHTTPRequest)
			}

			return nil
		}
	}
}
