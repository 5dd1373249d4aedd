package middleware

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// requestIDLength 요청 ID 길이 (nanoid 기본 알파벳)
const requestIDLength = 16

// RequestID 클라이언트가 X-Request-ID를 보내지 않으면 nanoid로 생성해 응답 헤더에 설정합니다.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newRequestID,
	})
}

func newRequestID() string {
	id, err := gonanoid.New(requestIDLength)
	if err != nil {
		return ""
	}
	return id
}
