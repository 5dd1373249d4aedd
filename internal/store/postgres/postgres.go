// Package postgres PostgreSQL에 헬스체크 리포트를 보관하는 저장소입니다.
//
// 리포트 본문은 JSONB 컬럼에 그대로 저장하고, 조회와 정렬에 필요한 값(dag_id, overall_status,
// checked_at)만 별도 컬럼으로 둡니다. 내부 키(id)는 응답에 노출되지 않습니다.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store PostgreSQL 기반 store.Store 구현체입니다.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New 데이터베이스에 연결하고 커넥션 풀을 설정한 뒤, 적용되지 않은 마이그레이션을 실행합니다.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "데이터베이스 연결을 열 수 없습니다")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "데이터베이스에 연결할 수 없습니다")
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "마이그레이션 소스를 생성할 수 없습니다")
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "마이그레이션 드라이버를 생성할 수 없습니다")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "마이그레이션을 준비할 수 없습니다")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.System, "마이그레이션 적용에 실패했습니다")
	}

	return nil
}

func (s *Store) Insert(ctx context.Context, report *model.HealthReport) error {
	if report == nil {
		return store.ErrNilReport
	}
	if err := ctx.Err(); err != nil {
		return store.NewErrCanceled(err)
	}
	return queryInsertReport(ctx, s.db, report)
}

func (s *Store) FindByID(ctx context.Context, id string) (*model.HealthReport, error) {
	return queryFindReport(ctx, s.db, id)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*model.HealthReport, error) {
	return queryListRecentReports(ctx, s.db, store.NormalizeLimit(limit))
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "데이터베이스에 연결할 수 없습니다")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
