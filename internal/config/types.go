package config

import (
	"time"
)

// AppConfig 애플리케이션 설정의 최상위 구조체입니다.
type AppConfig struct {
	Debug     bool            `json:"debug"`
	HTTP      HTTPConfig      `json:"http"`
	CORS      CORSConfig      `json:"cors"`
	Probe     ProbeConfig     `json:"probe"`
	Store     StoreConfig     `json:"store"`
	Events    EventsConfig    `json:"events"`
	Alert     AlertConfig     `json:"alert"`
	Metrics   MetricsConfig   `json:"metrics"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Log       LogConfig       `json:"log"`
}

// HTTPConfig API 서버 설정
type HTTPConfig struct {
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`

	// RequestTimeout 핸들러 하나의 최대 처리 시간. 노드 프로브 타임아웃보다 길어야 합니다.
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`

	// BodyLimit 요청 본문 크기 제한 (예: 2M)
	BodyLimit string `json:"body_limit" validate:"required"`

	RateLimit RateLimitConfig `json:"rate_limit"`

	Swagger bool `json:"swagger"`
}

// RateLimitConfig IP별 요청 속도 제한
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// CORSConfig 교차 출처 요청 허용 목록
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// ProbeConfig 노드 헬스 프로브 설정
type ProbeConfig struct {
	Timeout time.Duration `json:"timeout" validate:"gt=0"`

	// MaxConcurrency 동시에 진행할 프로브 수의 상한 (0: 무제한)
	MaxConcurrency int `json:"max_concurrency" validate:"min=0"`
}

// 저장소 드라이버
const (
	StoreDriverMemory   = "memory"
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// StoreConfig 헬스체크 리포트 저장소 설정
//
// Driver가 비어 있으면 DatabaseURL 설정 여부에 따라 postgres 또는 memory가 선택됩니다.
type StoreConfig struct {
	Driver      string `json:"driver" validate:"oneof=memory file postgres"`
	Dir         string `json:"dir"`
	DatabaseURL string `json:"database_url" validate:"required_if=Driver postgres"`
}

// EventsConfig 헬스체크 이벤트 발행 설정 (NATSURL이 비어 있으면 발행하지 않음)
type EventsConfig struct {
	NATSURL string `json:"nats_url" validate:"omitempty,url"`
}

// AlertConfig 종합 상태 악화 알림 설정
type AlertConfig struct {
	MinStatus string         `json:"min_status" validate:"oneof=unhealthy critical"`
	Telegram  TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 봇 알림 채널
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

// MetricsConfig Prometheus 메트릭 노출 설정
type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

// SchedulerConfig 주기적 헬스체크 작업 목록
type SchedulerConfig struct {
	Jobs []JobConfig `json:"jobs" validate:"unique=ID,dive"`
}

// JobConfig 그래프 파일 하나를 TimeSpec 주기로 검사하는 작업
type JobConfig struct {
	ID        string `json:"id" validate:"required"`
	TimeSpec  string `json:"time_spec" validate:"required,cron_spec"`
	GraphFile string `json:"graph_file" validate:"required"`
}

// LogConfig 로그 파일 설정
type LogConfig struct {
	Dir        string `json:"dir"`
	Level      string `json:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	MaxAgeDays int    `json:"max_age_days" validate:"min=0"`
	Console    bool   `json:"console"`
}
