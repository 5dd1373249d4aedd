// Package api 헬스체크 실행과 이력 조회를 제공하는 HTTP API 서비스입니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	_ "github.com/darkkaiser/dag-health-monitor/docs"
	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/metrics"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/handler/dag"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/handler/system"
	"github.com/darkkaiser/dag-health-monitor/internal/service/healthcheck"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// Service API 서버의 생명주기를 관리합니다.
//
// Start로 시작하면 별도 고루틴에서 HTTP 서버를 실행하고, 전달받은 Context가 취소되면
// Graceful Shutdown(최대 5초)을 수행한 뒤 WaitGroup에 완료를 알립니다.
type Service struct {
	appConfig *config.AppConfig

	checker healthcheck.Checker
	pinger  system.Pinger
	metrics *metrics.Collector

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. pinger와 metrics는 nil일 수 있습니다.
func NewService(appConfig *config.AppConfig, checker healthcheck.Checker, pinger system.Pinger, m *metrics.Collector, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if checker == nil {
		panic(constants.PanicMsgCheckerRequired)
	}

	return &Service{
		appConfig: appConfig,
		checker:   checker,
		pinger:    pinger,
		metrics:   m,
		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 이미 실행 중이면 경고만 남기고 serviceStopWG.Done()을 호출합니다.
//
// 즉시 반환되며, 서버는 고루틴에서 실행됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	e := s.setupServer()

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러, 미들웨어 체인, 라우트를 구성한 Echo 인스턴스를 반환합니다.
func (s *Service) setupServer() *echo.Echo {
	// 1. Handler 생성
	systemHandler := system.NewHandler(s.pinger, s.buildInfo)
	dagHandler := dag.NewHandler(s.checker)

	httpCfg := s.appConfig.HTTP

	// 2. Echo 서버 생성 (미들웨어 체인 포함)
	serverCfg := HTTPServerConfig{
		Debug:            s.appConfig.Debug,
		AllowOrigins:     s.appConfig.CORS.AllowOrigins,
		RequestTimeout:   httpCfg.RequestTimeout,
		BodyLimit:        httpCfg.BodyLimit,
		RateLimitEnabled: httpCfg.RateLimit.Enabled,
		RateLimitPerSec:  httpCfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:   httpCfg.RateLimit.Burst,
		EnableHSTS:       httpCfg.TLSServer,
	}
	routeOpts := RouteOptions{Swagger: httpCfg.Swagger}
	if s.metrics != nil && s.appConfig.Metrics.Enabled {
		serverCfg.Metrics = s.metrics
		routeOpts.MetricsHandler = s.metrics.Handler()
	}
	e := NewHTTPServer(serverCfg)

	// 3. 라우트 등록
	RegisterRoutes(e, systemHandler, dagHandler, routeOpts)

	return e
}

// startHTTPServer 서버를 실행하고, 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	httpCfg := s.appConfig.HTTP
	address := fmt.Sprintf(":%d", httpCfg.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": httpCfg.ListenPort,
		"tls":  httpCfg.TLSServer,
	}).Info(constants.LogMsgHTTPServerStarting)

	var err error
	if httpCfg.TLSServer {
		err = e.StartTLS(address, httpCfg.TLSCertFile, httpCfg.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError http.ErrServerClosed는 정상 종료로 보고 그 외 에러만 Error로 기록합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTP.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 상태를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 이미 종료됨
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
