package scheduler

import (
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

// ErrCheckerNotInitialized 서비스 시작 시 Checker가 없을 때 반환하는 에러입니다.
var ErrCheckerNotInitialized = apperrors.New(apperrors.Internal, "Checker 객체가 초기화되지 않았습니다")

// NewErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrInvalidCronSpec(jobID, timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (JobID=%s, TimeSpec='%s')", jobID, timeSpec)
}
