package errors

// ErrorType 에러의 성격을 분류하는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크, 데이터베이스 등 인프라 수준의 장애
	System

	// InvalidInput 요청 본문 또는 설정값 검증 실패
	InvalidInput

	// NotFound 요청한 헬스체크 기록이 존재하지 않음
	NotFound

	// Conflict 같은 식별자의 기록이 이미 존재함
	Conflict

	// ExecutionFailed 헬스체크 파이프라인 실행 실패
	ExecutionFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 외부 의존성(저장소, 메시지 브로커 등) 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	Conflict:        "Conflict",
	ExecutionFailed: "ExecutionFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

// String fmt.Stringer 인터페이스를 구현합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(?)"
	}
	return errorTypeNames[t]
}
