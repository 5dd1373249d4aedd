// Package file 헬스체크 리포트를 디렉토리 안의 JSON 파일로 보관하는 저장소입니다.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
	"github.com/darkkaiser/dag-health-monitor/pkg/concurrency"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "store.file"

const (
	defaultDataDirectory = "data"

	reportFileExt   = ".json"
	tempFilePattern = "report-*.tmp"

	// staleTempFileAge 이보다 오래된 임시 파일은 비정상 종료의 잔재로 보고 삭제합니다.
	staleTempFileAge = time.Hour
)

// Store 파일 시스템 기반 store.Store 구현체입니다.
//
//   - {dir}/{dag_id}.json: 리포트 하나
//   - {dir}/report-*.tmp: 저장 중인 임시 파일
type Store struct {
	baseDir string

	// locks 같은 리포트 파일에 대한 동시 접근을 직렬화합니다.
	locks *concurrency.KeyedMutex[string]
}

var _ store.Store = (*Store)(nil)

// New 디렉토리를 준비하고 이전 실행에서 남은 임시 파일을 정리한 뒤 저장소를 반환합니다.
// dir이 비어 있으면 "data"를 사용합니다.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newErrAbsPathConversionFailed(err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, newErrDirectoryAccessFailed(err, absDir)
	}

	s := &Store{
		baseDir: absDir,
		locks:   concurrency.NewKeyedMutex[string](),
	}
	s.cleanupStaleTempFiles()

	return s, nil
}

func (s *Store) cleanupStaleTempFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dir":   s.baseDir,
			"error": err,
		}).Warn("임시 파일 정리 중단: 디렉토리 조회 실패")
		return
	}

	threshold := time.Now().Add(-staleTempFileAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, entry.Name()); !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(path); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{"file": path, "error": err}).Warn("임시 파일 삭제 실패")
		}
	}
}

func (s *Store) Insert(ctx context.Context, report *model.HealthReport) error {
	if report == nil {
		return store.ErrNilReport
	}
	if err := ctx.Err(); err != nil {
		return store.NewErrCanceled(err)
	}

	path, err := s.resolveSafePath(report.DAGID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return newErrJSONMarshalFailed(err)
	}

	return s.locks.WithLock(path, func() error {
		if _, err := os.Stat(path); err == nil {
			return store.NewErrDuplicate(report.DAGID)
		}
		// 잠금을 기다리는 동안 요청이 끝났을 수 있다
		if err := ctx.Err(); err != nil {
			return store.NewErrCanceled(err)
		}
		return writeAtomic(path, data)
	})
}

func (s *Store) FindByID(_ context.Context, id string) (*model.HealthReport, error) {
	path, err := s.resolveSafePath(id)
	if err != nil {
		// 저장 경로로 사용할 수 없는 식별자는 존재할 수 없는 기록이다
		return nil, store.NewErrNotFound(id)
	}

	var data []byte
	err = s.locks.WithLock(path, func() error {
		var readErr error
		if data, readErr = os.ReadFile(path); readErr != nil {
			if os.IsNotExist(readErr) {
				return store.NewErrNotFound(id)
			}
			return newErrReadFailed(readErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var report model.HealthReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, newErrJSONUnmarshalFailed(err)
	}
	return &report, nil
}

// ListRecent 디렉토리의 모든 리포트를 읽어 최신순으로 정렬합니다. 읽을 수 없는 파일은 경고 로그만 남기고 건너뜁니다.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*model.HealthReport, error) {
	limit = store.NormalizeLimit(limit)

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, newErrReadFailed(err)
	}

	reports := make([]*model.HealthReport, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportFileExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := strings.TrimSuffix(entry.Name(), reportFileExt)
		r, err := s.FindByID(ctx, id)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  entry.Name(),
				"error": err,
			}).Warn("리포트 파일을 읽을 수 없어 이력에서 제외합니다")
			continue
		}
		reports = append(reports, r)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CheckedAt.After(reports[j].CheckedAt)
	})
	if len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}

func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return newErrDirectoryAccessFailed(err, s.baseDir)
	}
	if !info.IsDir() {
		return newErrDirectoryAccessFailed(os.ErrInvalid, s.baseDir)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// resolveSafePath 리포트 식별자로 파일 경로를 만들고, 그 경로가 저장 디렉토리를 벗어나지 않는지 검증합니다.
func (s *Store) resolveSafePath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", ErrInvalidReportID
	}

	cleanPath := filepath.Clean(filepath.Join(s.baseDir, id+reportFileExt))

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil {
		return "", newErrPathResolutionFailed(err)
	}
	if strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(component, applog.Fields{
			"dag_id":   id,
			"base_dir": s.baseDir,
			"path":     cleanPath,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")
		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

// writeAtomic 임시 파일 쓰기, fsync, rename 순서로 파일을 원자적으로 기록합니다.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return newErrWriteFailed(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return newErrWriteFailed(err)
	}
	if err := tmp.Sync(); err != nil {
		return newErrWriteFailed(err)
	}
	if err := tmp.Close(); err != nil {
		return newErrWriteFailed(err)
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		return newErrWriteFailed(err)
	}

	// rename을 디스크에 반영한다. 실패해도 데이터는 이미 기록되었다
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}

// renameWithRetry 백신이나 인덱서가 파일을 잠시 점유하는 환경(Windows)을 위해 rename을 몇 차례 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const (
		maxRetries = 5
		retryDelay = 10 * time.Millisecond
	)

	var lastErr error
	for range maxRetries {
		if lastErr = os.Rename(oldPath, newPath); lastErr == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}
	return lastErr
}
