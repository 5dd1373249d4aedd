// Package constants API 서비스 전반에서 공유하는 상수를 정의합니다.
package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentMiddleware   = "api.middleware"
	ComponentErrorHandler = "api.error_handler"
)

// HTTP 서버 기본값
const (
	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultRequestTimeout 노드 프로브 타임아웃(10초)보다 충분히 길어야 합니다.
	DefaultRequestTimeout = 30 * time.Second

	DefaultMaxBodySize = "2M"

	DefaultRateLimitPerSecond = 10
	DefaultRateLimitBurst     = 20

	// ShutdownTimeout Graceful Shutdown 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)

// 라우트 경로
const (
	PathAPIPrefix   = "/api"
	PathHealthCheck = "/dag/health-check"
	PathHistory     = "/dag/history"
	PathHistoryByID = "/dag/history/:id"

	ParamID = "id"
)

// ServiceMessage GET /api/ 응답 메시지
const ServiceMessage = "DAG Health Monitoring Service"

// 시스템 헬스 상태
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyStore = "store"
)

// 응답 에러 메시지
const (
	ErrMsgBadRequest         = "잘못된 요청입니다"
	ErrMsgInvalidJSON        = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgRecordNotFound     = "Health check record not found"
	ErrMsgNotFound           = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgRequestEntityLarge = "요청 본문이 너무 큽니다"
)

// 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
	LogMsgHTTPRequest        = "HTTP 요청 처리 완료"
)

// 핸들러 로그 메시지
const (
	LogMsgHealthCheck       = "헬스체크 요청"
	LogMsgVersionInfo       = "버전 정보 요청"
	LogMsgDAGCheckRequested = "DAG 헬스체크 요청"
	LogMsgDAGCheckFailed    = "DAG 헬스체크 실행 실패"
	LogMsgHistoryRequested  = "헬스체크 이력 조회 요청"
	LogMsgHistoryFailed     = "헬스체크 이력 조회 실패"
)

// 의존성 상태 메시지
const (
	MsgDepStatusHealthy        = "정상 작동 중"
	MsgDepStatusNotInitialized = "저장소가 초기화되지 않았습니다"
)

// Panic 메시지
const (
	PanicMsgCheckerRequired   = "Checker는 필수입니다"
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"
)
