package file

import (
	"fmt"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

var (
	// ErrInvalidReportID 파일 이름으로 사용할 수 없는 리포트 식별자
	ErrInvalidReportID = apperrors.New(apperrors.InvalidInput, "파일 이름으로 사용할 수 없는 리포트 식별자입니다")

	// ErrPathTraversalDetected 저장 디렉토리를 벗어나는 경로 접근 시도
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 허용되지 않은 경로 접근 시도로 인해 요청이 차단되었습니다")
)

func newErrAbsPathConversionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장소 초기화 실패: 절대 경로 변환 불가")
}

func newErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("저장소 디렉토리에 접근할 수 없습니다 (%s)", dir))
}

func newErrPathResolutionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "보안 검증 실패: 파일 경로를 해석할 수 없습니다")
}

func newErrJSONMarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "리포트 직렬화(JSON Marshal) 중 오류가 발생했습니다")
}

func newErrJSONUnmarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장된 리포트 역직렬화(JSON Unmarshal) 중 오류가 발생했습니다")
}

func newErrReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "리포트 파일 읽기 중 오류가 발생했습니다")
}

func newErrWriteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "리포트 파일 저장 중 오류가 발생했습니다")
}
