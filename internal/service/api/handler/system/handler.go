// Package system 서비스 안내, 헬스체크, 버전 정보 등 시스템 수준 엔드포인트를 처리합니다.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/model"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// pingTimeout 저장소 상태 확인에 허용하는 시간
const pingTimeout = 2 * time.Second

// Pinger 저장소 연결 상태 확인 인터페이스입니다. (store.Store, *healthcheck.Service)
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	pinger Pinger

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. pinger가 nil이면 저장소 상태는 unhealthy로 보고됩니다.
func NewHandler(pinger Pinger, buildInfo version.Info) *Handler {
	return &Handler{
		pinger:          pinger,
		buildInfo:       buildInfo,
		serverStartTime: time.Now(),
	}
}

// RootHandler godoc
// @Summary 서비스 안내
// @Description 서비스 이름과 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router /api/ [get]
func (h *Handler) RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, model.RootResponse{
		Message: constants.ServiceMessage,
		Version: h.buildInfo.Version,
	})
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 모니터 서버 자신과 저장소의 상태를 확인합니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - dependencies: 외부 의존성별 상태 (store)
// @Tags System
// @Produce json
// @Success 200 {object} model.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := map[string]model.DependencyStatus{
		constants.DependencyStore: h.storeStatus(c.Request().Context()),
	}

	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, model.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) storeStatus(ctx context.Context) model.DependencyStatus {
	if h.pinger == nil {
		return model.DependencyStatus{Status: constants.HealthStatusUnhealthy, Message: constants.MsgDepStatusNotInitialized}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return model.DependencyStatus{Status: constants.HealthStatusUnhealthy, Message: err.Error()}
	}
	return model.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 버전, Git 커밋 해시, 빌드 날짜, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} model.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, model.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
		Dirty:     h.buildInfo.Dirty,
	})
}
