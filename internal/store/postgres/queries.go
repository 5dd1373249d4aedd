package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
)

// uniqueViolation PostgreSQL unique_violation 에러 코드
const uniqueViolation = "23505"

// executor *sql.DB와 *sql.Tx가 공통으로 만족하는 인터페이스입니다.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scannable *sql.Row와 *sql.Rows가 공통으로 만족하는 인터페이스입니다.
type scannable interface {
	Scan(dest ...any) error
}

func queryInsertReport(ctx context.Context, db executor, r *model.HealthReport) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "리포트 직렬화에 실패했습니다")
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO health_checks (dag_id, overall_status, checked_at, report) VALUES ($1, $2, $3, $4)`,
		r.DAGID, string(r.OverallStatus), r.CheckedAt, doc,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return store.NewErrDuplicate(r.DAGID)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return store.NewErrCanceled(err)
		}
		return apperrors.Wrap(err, apperrors.Unavailable, "헬스체크 리포트 저장에 실패했습니다")
	}

	return nil
}

func queryFindReport(ctx context.Context, db executor, id string) (*model.HealthReport, error) {
	row := db.QueryRowContext(ctx, `SELECT report FROM health_checks WHERE dag_id = $1`, id)

	r, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.NewErrNotFound(id)
		}
		return nil, err
	}
	return r, nil
}

func queryListRecentReports(ctx context.Context, db executor, limit int) ([]*model.HealthReport, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT report FROM health_checks ORDER BY checked_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "헬스체크 이력 조회에 실패했습니다")
	}
	defer rows.Close()

	reports := make([]*model.HealthReport, 0, limit)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "헬스체크 이력 조회에 실패했습니다")
	}

	return reports, nil
}

func scanReport(s scannable) (*model.HealthReport, error) {
	var doc []byte
	if err := s.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "헬스체크 리포트 조회에 실패했습니다")
	}

	var r model.HealthReport
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "저장된 헬스체크 리포트를 해석할 수 없습니다")
	}
	return &r, nil
}
