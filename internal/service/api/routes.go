package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/handler/dag"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/handler/system"
)

// RouteOptions 선택적으로 노출하는 라우트 설정입니다.
type RouteOptions struct {
	// MetricsHandler nil이 아니면 GET /metrics에 등록합니다.
	MetricsHandler http.Handler

	// Swagger true이면 /swagger/*에 API 문서를 제공합니다.
	Swagger bool
}

// RegisterRoutes API 서비스의 모든 라우트를 등록합니다.
//
//   - /api/: 서비스 안내
//   - /api/dag/*: 헬스체크 실행 및 이력 조회
//   - /health, /version: 모니터 서버 자신의 상태
//   - /metrics, /swagger/*: 설정에 따라 선택적으로 등록
func RegisterRoutes(e *echo.Echo, sh *system.Handler, dh *dag.Handler, opts RouteOptions) {
	registerSystemRoutes(e, sh)
	registerDAGRoutes(e, dh)

	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}
	if opts.Swagger {
		registerSwaggerRoutes(e)
	}
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET(constants.PathAPIPrefix+"/", h.RootHandler)
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerDAGRoutes(e *echo.Echo, h *dag.Handler) {
	g := e.Group(constants.PathAPIPrefix)

	g.POST(constants.PathHealthCheck, h.HealthCheckHandler)
	g.GET(constants.PathHistory, h.HistoryHandler)
	g.GET(constants.PathHistoryByID, h.GetHandler)
}

func registerSwaggerRoutes(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
