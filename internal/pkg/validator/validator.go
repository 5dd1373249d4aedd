// Package validator go-playground/validator 인스턴스를 애플리케이션 전역에서 공유하고,
// 검증 실패를 사용자에게 보여줄 수 있는 메시지로 변환합니다.
package validator

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

var (
	instance *validator.Validate
	once     sync.Once

	// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

	cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
)

// Get 커스텀 태그가 등록된 공유 Validate 인스턴스를 반환합니다.
//
// 등록된 커스텀 태그:
//   - cors_origin: "*" 또는 scheme://host[:port]
//   - cron_spec: 초 단위를 포함한 6필드 Cron 표현식 또는 @every 등의 디스크립터
//   - telegram_bot_token: 텔레그램 봇 토큰 형식
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지에 Go 필드명 대신 JSON 이름을 사용한다
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister(v, "cors_origin", func(fl validator.FieldLevel) bool {
			return ValidateCORSOrigin(fl.Field().String()) == nil
		})
		mustRegister(v, "cron_spec", func(fl validator.FieldLevel) bool {
			_, err := CronParser().Parse(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "telegram_bot_token", func(fl validator.FieldLevel) bool {
			return telegramBotTokenRegex.MatchString(fl.Field().String())
		})

		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// CronParser 애플리케이션 표준 Cron 파서입니다. ([초] [분] [시] [일] [월] [요일], @daily, @every 1m 등)
func CronParser() cron.Parser {
	return cronParser
}

// Struct 구조체를 검증합니다. 실패 시 첫 번째 위반 내용을 담은 InvalidInput 에러를 반환합니다.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(err, apperrors.InvalidInput, "유효성 검증에 실패했습니다")
	}
	return apperrors.Wrap(err, apperrors.InvalidInput, FormatValidationError(err))
}

// FormatValidationError 검증 에러의 첫 번째 항목을 사람이 읽을 수 있는 문장으로 변환합니다.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 값은 필수입니다", field)
	case "unique":
		return fmt.Sprintf("%s 안에 중복된 식별자가 있습니다", field)
	case "min", "gte":
		return fmt.Sprintf("%s 값은 %s 이상이어야 합니다", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s 값은 %s 이하여야 합니다", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s 값은 [%s] 중 하나여야 합니다 (입력값: %v)", field, fe.Param(), fe.Value())
	case "required_if":
		return fmt.Sprintf("%s 값은 %s 조건에서 필수입니다", field, fe.Param())
	case "cors_origin":
		return fmt.Sprintf("%s 값이 올바른 CORS Origin이 아닙니다: '%v'", field, fe.Value())
	case "cron_spec":
		return fmt.Sprintf("%s 값이 올바른 Cron 표현식이 아닙니다: '%v'", field, fe.Value())
	case "telegram_bot_token":
		return fmt.Sprintf("%s 값이 올바른 텔레그램 봇 토큰 형식이 아닙니다", field)
	default:
		return fmt.Sprintf("%s 값이 올바르지 않습니다 (조건: %s)", field, fe.Tag())
	}
}

// ValidateCORSOrigin "*" 또는 경로, 쿼리, 사용자 정보가 없는 http(s)://host[:port] 형식인지 검증합니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}
	if origin == "" {
		return errors.New("CORS Origin은 비어 있을 수 없습니다")
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패 (input=%q): %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin 스키마는 http 또는 https여야 합니다 (input=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin은 scheme://host[:port] 형식이어야 합니다 (input=%q)", origin)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin에 호스트가 없습니다 (input=%q)", origin)
	}
	if host != "localhost" && net.ParseIP(host) == nil && !isDomainName(host) {
		return fmt.Errorf("CORS Origin 호스트가 올바르지 않습니다 (input=%q)", origin)
	}
	return nil
}

// isDomainName RFC 1123 호스트명 규칙 (전체 253자, 레이블 1~63자, 영문/숫자/하이픈)
func isDomainName(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) == 0 || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	return true
}
