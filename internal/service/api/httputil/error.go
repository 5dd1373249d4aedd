// Package httputil 표준 에러 응답 생성과 Echo 전역 에러 핸들러를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/model"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// ErrorResponse 에러 응답 본문입니다. 핸들러 Swagger 주석에서 참조합니다.
type ErrorResponse = model.ErrorResponse

func newHTTPError(code int, message string) *echo.HTTPError {
	return echo.NewHTTPError(code, model.ErrorResponse{ResultCode: code, Message: message})
}

// NewBadRequestError 400
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError 404
func NewNotFoundError(message string) error {
	return newHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500
func NewInternalServerError(message string) error {
	return newHTTPError(http.StatusInternalServerError, message)
}

// ErrorHandler Echo 전역 에러 핸들러입니다.
//
// 모든 에러를 model.ErrorResponse JSON으로 변환하고, 상태 코드에 따라 Error(5xx) 또는 Warn(4xx)으로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case model.ErrorResponse:
			message = m.Message
		case string:
			message = m
		}

		// 라우팅 실패 등 Echo 기본 404는 한국어 메시지로 통일
		if code == http.StatusNotFound && he.Message == echo.ErrNotFound.Message {
			message = constants.ErrMsgNotFound
		}
		if code == http.StatusRequestEntityTooLarge {
			message = constants.ErrMsgRequestEntityLarge
		}
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, model.ErrorResponse{ResultCode: code, Message: message})
}
