package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/dag-health-monitor/internal/service/api/middleware"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0: 30초)
	// 노드 프로브 타임아웃보다 길어야 헬스체크 요청이 도중에 끊기지 않습니다.
	RequestTimeout time.Duration

	// BodyLimit 요청 본문 최대 크기 (예: "2M", 빈 값: 2MB)
	BodyLimit string

	// RateLimitEnabled가 false이면 요청 제한을 적용하지 않습니다.
	RateLimitEnabled bool
	RateLimitPerSec  float64
	RateLimitBurst   int

	// EnableHSTS TLS 서버일 때만 켭니다.
	EnableHSTS bool

	// Metrics nil이 아니면 요청별 메트릭을 기록합니다.
	Metrics appmiddleware.HTTPObserver
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery: 다른 미들웨어의 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID: 로그에 request_id를 남기기 위해 로깅보다 앞에 위치
//  3. Server 헤더 제거
//  4. HTTPLogger: 429/503 응답도 기록되도록 RateLimit/Timeout보다 앞에 위치
//  5. Metrics (선택)
//  6. RateLimiting (선택, IP별)
//  7. BodyLimit (초과 시 413)
//  8. Timeout (초과 시 503)
//  9. CORS
//  10. Secure (보안 헤더)
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	// 응답 쓰기 제한은 요청 처리 제한보다 길어야 Timeout 미들웨어의 503 응답이 전달된다
	e.Server.WriteTimeout = timeout + 5*time.Second

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = constants.DefaultMaxBodySize
	}

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(appmiddleware.RequestID())
	// 3. Server 헤더 제거
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	// 4. HTTP 로깅
	e.Use(appmiddleware.HTTPLogger())
	// 5. 메트릭
	if cfg.Metrics != nil {
		e.Use(appmiddleware.Metrics(cfg.Metrics))
	}
	// 6. Rate Limiting
	if cfg.RateLimitEnabled {
		rps, burst := cfg.RateLimitPerSec, cfg.RateLimitBurst
		if rps <= 0 {
			rps = constants.DefaultRateLimitPerSecond
		}
		if burst <= 0 {
			burst = constants.DefaultRateLimitBurst
		}
		e.Use(appmiddleware.RateLimiting(rps, burst))
	}
	// 7. Body Limit
	e.Use(middleware.BodyLimit(bodyLimit))
	// 8. Timeout
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	// 9. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	// 10. 보안 헤더
	secure := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = 31536000
	}
	e.Use(middleware.SecureWithConfig(secure))

	return e
}
