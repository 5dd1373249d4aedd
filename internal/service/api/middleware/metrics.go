package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPObserver HTTP 요청 메트릭 수집 인터페이스입니다. (*metrics.Collector)
type HTTPObserver interface {
	ObserveHTTP(method, route string, code int, elapsed time.Duration)
}

// Metrics 요청마다 메서드, 라우트 패턴, 응답 코드, 처리 시간을 기록합니다.
//
// HTTPLogger 뒤에 위치해야 합니다. 에러 응답의 상태 코드가 확정된 뒤에 기록하기 위해 에러도 여기서 처리합니다.
func Metrics(obs HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveHTTP(c.Request().Method, route, c.Response().Status, time.Since(start))

			return nil
		}
	}
}
