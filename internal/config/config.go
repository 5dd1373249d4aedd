// Package config 기본값, JSON 설정 파일, 환경 변수를 차례로 병합해 애플리케이션 설정을 만듭니다.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/validator"
)

const (
	// AppName 애플리케이션 식별자 (로그 파일명, User-Agent 등)
	AppName = "dag-health-monitor"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 재정의용 환경 변수 접두사 (예: DAGMON_PROBE__TIMEOUT=5s -> probe.timeout)
	EnvPrefix = "DAGMON_"
)

// Default 설정 파일에 값이 없을 때 적용되는 기본 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		HTTP: HTTPConfig{
			ListenPort:     8000,
			RequestTimeout: 30 * time.Second,
			BodyLimit:      "2M",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Probe: ProbeConfig{
			Timeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Dir: "data",
		},
		Alert: AlertConfig{
			MinStatus: "critical",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Dir:        "logs",
			MaxAgeDays: 30,
		},
	}
}

// Load 기본 설정 파일을 읽습니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 설정을 병합하고 검증합니다. 우선순위는 환경 변수 > 설정 파일 > 기본값입니다.
//
// filename이 비어 있으면 설정 파일 없이 기본값과 환경 변수만 사용합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if filename != "" {
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", filename)
			}
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	// 3. 배포 환경 호환 변수 (CORS_ORIGINS, DATABASE_URL)
	if err := k.Load(confmap.Provider(compatOverrides(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. DAGMON_ 환경 변수 (이중 언더스코어는 계층 구분자)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", prefixedEnv), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 5. 구조체 변환 (정의되지 않은 키는 오류)
	var cfg AppConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			TagName:          "json",
			Result:           &cfg,
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	cfg.normalize()

	// 6. 유효성 검사
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &cfg, nil
}

// compatOverrides 접두사 없는 배포 환경 변수를 설정 키로 옮깁니다. 값이 비어 있는 변수는 무시합니다.
func compatOverrides() map[string]any {
	overrides := make(map[string]any)
	if origins := splitList(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		overrides["cors.allow_origins"] = origins
	}
	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		overrides["store.database_url"] = url
	}
	return overrides
}

func prefixedEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "cors.allow_origins" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *AppConfig) normalize() {
	if c.Store.Driver == "" {
		if c.Store.DatabaseURL != "" {
			c.Store.Driver = StoreDriverPostgres
		} else {
			c.Store.Driver = StoreDriverMemory
		}
	}
	c.Store.Driver = strings.ToLower(c.Store.Driver)
}

// Validate 구조체 태그 규칙과 항목 간 정합성을 검사합니다.
func (c *AppConfig) Validate() error {
	if err := validator.Struct(c); err != nil {
		return err
	}

	if slices.Contains(c.CORS.AllowOrigins, "*") && len(c.CORS.AllowOrigins) > 1 {
		return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
	}

	if c.HTTP.RequestTimeout <= c.Probe.Timeout {
		return apperrors.Newf(apperrors.InvalidInput, "HTTP 요청 타임아웃(%s)은 프로브 타임아웃(%s)보다 길어야 합니다", c.HTTP.RequestTimeout, c.Probe.Timeout)
	}

	return nil
}

// VerifyRecommendations 오류는 아니지만 운영상 주의가 필요한 설정에 대한 경고를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTP.ListenPort < 1024 {
		warnings = append(warnings, "시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다. 서버 구동 시 관리자 권한이 필요할 수 있습니다")
	}
	if c.Store.Driver == StoreDriverMemory {
		warnings = append(warnings, "메모리 저장소를 사용합니다. 프로세스가 종료되면 헬스체크 이력이 사라집니다")
	}
	if len(c.Scheduler.Jobs) > 0 && c.Store.Driver == StoreDriverMemory {
		warnings = append(warnings, "스케줄 작업이 메모리 저장소에 기록됩니다")
	}
	// 동시 실행 수를 제한하면 프로브가 ceil(노드 수/제한)회에 나뉘어 수행된다
	if c.Probe.MaxConcurrency > 0 && c.Probe.Timeout > 0 {
		capacity := c.Probe.MaxConcurrency * int(c.HTTP.RequestTimeout/c.Probe.Timeout)
		warnings = append(warnings, fmt.Sprintf("프로브 동시 실행 수가 %d로 제한되어 있습니다. 노드가 %d개를 넘는 그래프는 HTTP 요청 타임아웃(%s) 안에 끝나지 않을 수 있으며, 이 경우 결과는 저장되지 않습니다", c.Probe.MaxConcurrency, capacity, c.HTTP.RequestTimeout))
	}

	return warnings
}
