package middleware

import (
	"fmt"
	"runtime"

	"github.com/labstack/echo/v4"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// stackBufferSize 패닉 스택 트레이스 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러의 panic을 복구하여 500 응답으로 변환하고 스택 트레이스를 기록합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				recovered, ok := r.(error)
				if !ok {
					recovered = fmt.Errorf("%v", r)
				}
				recovered = apperrors.Wrap(recovered, apperrors.Internal, "핸들러 실행 중 panic이 발생했습니다")

				stack := make([]byte, stackBufferSize)
				n := runtime.Stack(stack, false)

				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"error":      recovered,
					"stack":      string(stack[:n]),
					"path":       c.Request().URL.Path,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Error("PANIC RECOVERED")

				err = recovered
			}()

			return next(c)
		}
	}
}
