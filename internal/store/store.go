// Package store 헬스체크 리포트를 보관하는 저장소 인터페이스를 정의합니다.
package store

import (
	"context"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

// DefaultHistoryLimit 이력 조회 시 반환하는 최대 리포트 수
const DefaultHistoryLimit = 100

// Store 헬스체크 리포트 저장소입니다.
//
// 구현체는 단일 리포트 삽입의 원자성을 스스로 보장해야 합니다.
type Store interface {
	// Insert 리포트를 저장합니다. 같은 DAGID가 이미 있으면 Conflict 에러를 반환합니다.
	// ctx가 이미 취소되었거나 만료되었으면 아무것도 저장하지 않습니다.
	Insert(ctx context.Context, report *model.HealthReport) error

	// FindByID DAGID로 리포트를 조회합니다. 없으면 NotFound 에러를 반환합니다.
	FindByID(ctx context.Context, id string) (*model.HealthReport, error)

	// ListRecent CheckedAt 기준 최신순으로 최대 limit개의 리포트를 반환합니다.
	ListRecent(ctx context.Context, limit int) ([]*model.HealthReport, error)

	// Ping 저장소 연결 상태를 확인합니다.
	Ping(ctx context.Context) error

	Close() error
}

// NewErrNotFound 리포트가 존재하지 않을 때의 에러를 생성합니다.
func NewErrNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "헬스체크 기록(%s)을 찾을 수 없습니다", id)
}

// NewErrDuplicate 같은 식별자의 리포트가 이미 있을 때의 에러를 생성합니다.
func NewErrDuplicate(id string) error {
	return apperrors.Newf(apperrors.Conflict, "헬스체크 기록(%s)이 이미 존재합니다", id)
}

// NewErrCanceled 요청 Context가 이미 끝나 저장을 포기했을 때의 에러를 생성합니다.
func NewErrCanceled(cause error) error {
	return apperrors.Wrap(cause, apperrors.Timeout, "요청이 종료되어 헬스체크 기록을 저장하지 않았습니다")
}

// ErrNilReport nil 리포트 저장 시도
var ErrNilReport = apperrors.New(apperrors.InvalidInput, "저장할 헬스체크 리포트가 nil입니다")

// NormalizeLimit limit이 0 이하이거나 DefaultHistoryLimit을 넘으면 DefaultHistoryLimit으로 보정합니다.
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}
