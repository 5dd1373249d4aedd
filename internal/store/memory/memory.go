// Package memory 프로세스 메모리에 리포트를 보관하는 저장소입니다. 테스트와 일회성 CLI 점검에 사용합니다.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
)

// Store 메모리 기반 store.Store 구현체입니다. 저장/조회 시 리포트를 복사하여 외부 변경으로부터 격리합니다.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*model.HealthReport
	order   []string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{reports: make(map[string]*model.HealthReport)}
}

func (s *Store) Insert(ctx context.Context, report *model.HealthReport) error {
	if report == nil {
		return store.ErrNilReport
	}
	if err := ctx.Err(); err != nil {
		return store.NewErrCanceled(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[report.DAGID]; exists {
		return store.NewErrDuplicate(report.DAGID)
	}
	s.reports[report.DAGID] = report.Clone()
	s.order = append(s.order, report.DAGID)

	return nil
}

func (s *Store) FindByID(_ context.Context, id string) (*model.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, store.NewErrNotFound(id)
	}
	return r.Clone(), nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]*model.HealthReport, error) {
	limit = store.NormalizeLimit(limit)

	s.mu.RLock()
	out := make([]*model.HealthReport, 0, len(s.order))
	// 같은 시각이면 나중에 저장된 리포트가 앞에 오도록 역순으로 수집 후 안정 정렬한다
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.reports[s.order[i]].Clone())
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckedAt.After(out[j].CheckedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Len 저장된 리포트 수를 반환합니다.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
