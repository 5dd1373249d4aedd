package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/dag-health-monitor/internal/events"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/probe"
	"github.com/darkkaiser/dag-health-monitor/internal/report"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
	"github.com/darkkaiser/dag-health-monitor/internal/store/memory"
)

// =============================================================================
// Test Doubles
// =============================================================================

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingNotifier struct {
	reports []*model.HealthReport
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, r *model.HealthReport) error {
	n.reports = append(n.reports, r)
	return n.err
}

type recordingRecorder struct {
	statuses []model.OverallStatus
	nodes    []int
}

func (r *recordingRecorder) ObserveCheck(status model.OverallStatus, nodes int, _ time.Duration) {
	r.statuses = append(r.statuses, status)
	r.nodes = append(r.nodes, nodes)
}

// failingStore Insert/ListRecent가 항상 실패하는 저장소입니다.
type failingStore struct {
	store.Store
}

func (failingStore) Insert(context.Context, *model.HealthReport) error {
	return apperrors.New(apperrors.Unavailable, "database is down")
}

func (failingStore) ListRecent(context.Context, int) ([]*model.HealthReport, error) {
	return nil, apperrors.New(apperrors.Unavailable, "database is down")
}

// =============================================================================
// Helpers
// =============================================================================

func statusServer(t *testing.T, code int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newService(t *testing.T, st store.Store, opts ...Option) *Service {
	t.Helper()
	p := probe.New(probe.Config{Timeout: 2 * time.Second})
	return NewService(p, st, opts...)
}

func sampleGraph(t *testing.T) model.Graph {
	ok := statusServer(t, http.StatusOK)
	bad := statusServer(t, http.StatusServiceUnavailable)

	return model.Graph{
		Nodes: []model.Node{
			{ID: "db", Name: "Database", HealthEndpoint: bad},
			{ID: "frontend", Name: "Frontend", HealthEndpoint: ok},
			{ID: "api", Name: "API", HealthEndpoint: ok},
		},
		Edges: []model.Edge{
			{From: "frontend", To: "api"},
			{From: "api", To: "db"},
		},
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestNewService_필수_의존성(t *testing.T) {
	p := probe.New(probe.Config{})

	assert.PanicsWithValue(t, "Prober는 필수입니다", func() { NewService(nil, memory.New()) })
	assert.PanicsWithValue(t, "Store는 필수입니다", func() { NewService(p, nil) })
}

func TestCheck(t *testing.T) {
	st := memory.New()
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	rec := &recordingRecorder{}
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	s := newService(t, st,
		WithAssembler(report.NewAssembler(func() string { return "fixed-id" }, func() time.Time { return fixed })),
		WithPublisher(pub),
		WithNotifier(notifier),
		WithRecorder(rec),
	)

	r, err := s.Check(context.Background(), sampleGraph(t))
	require.NoError(t, err)

	t.Run("순회 순서와 노드 결과 순서가 일치", func(t *testing.T) {
		assert.Equal(t, []string{"frontend", "api", "db"}, r.TraversalOrder)
		require.Len(t, r.Nodes, 3)
		for i, id := range r.TraversalOrder {
			assert.Equal(t, id, r.Nodes[i].NodeID)
		}
	})

	t.Run("집계와 조립", func(t *testing.T) {
		assert.Equal(t, "fixed-id", r.DAGID)
		assert.Equal(t, fixed, r.CheckedAt)
		assert.Equal(t, model.OverallUnhealthy, r.OverallStatus)
		assert.Equal(t, model.NodeUnhealthy, r.Nodes[2].Status)
		assert.Equal(t, "HTTP 503", r.Nodes[2].ErrorMessage)
		assert.Len(t, r.GraphData.Nodes, 3)
		assert.Equal(t, "Database", r.GraphData.Nodes[0].Label)
	})

	t.Run("저장됨", func(t *testing.T) {
		got, err := s.Get(context.Background(), "fixed-id")
		require.NoError(t, err)
		assert.Equal(t, r.OverallStatus, got.OverallStatus)
	})

	t.Run("이벤트, 알림, 메트릭", func(t *testing.T) {
		assert.Equal(t, []string{events.TopicHealthChecked, events.TopicHealthDegraded}, pub.topics)
		require.Len(t, notifier.reports, 1)
		assert.Equal(t, "fixed-id", notifier.reports[0].DAGID)
		assert.Equal(t, []model.OverallStatus{model.OverallUnhealthy}, rec.statuses)
		assert.Equal(t, []int{3}, rec.nodes)
	})
}

func TestCheck_빈_그래프(t *testing.T) {
	s := newService(t, memory.New())

	r, err := s.Check(context.Background(), model.Graph{})

	require.NoError(t, err)
	assert.Equal(t, model.OverallHealthy, r.OverallStatus)
	assert.Empty(t, r.Nodes)
	assert.Empty(t, r.TraversalOrder)
}

func TestCheck_저장_실패(t *testing.T) {
	pub := &recordingPublisher{}
	s := newService(t, failingStore{}, WithPublisher(pub))

	r, err := s.Check(context.Background(), sampleGraph(t))

	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.Contains(t, err.Error(), "database is down")
	assert.Empty(t, pub.topics, "저장에 실패한 리포트는 발행하지 않아야 합니다")
}

func TestCheck_발행과_알림_실패는_무시(t *testing.T) {
	s := newService(t, memory.New(),
		WithPublisher(&recordingPublisher{err: errors.New("nats down")}),
		WithNotifier(&recordingNotifier{err: errors.New("telegram down")}),
	)

	r, err := s.Check(context.Background(), sampleGraph(t))

	require.NoError(t, err)
	assert.NotNil(t, r)
}

// stalledNotifier ctx가 끝날 때까지 응답하지 않는 알림 채널입니다.
type stalledNotifier struct {
	canceled atomic.Bool
}

func (n *stalledNotifier) Notify(ctx context.Context, _ *model.HealthReport) error {
	<-ctx.Done()
	n.canceled.Store(true)
	return ctx.Err()
}

// 알림 채널이 응답하지 않아도 Check는 발송 제한 시간 안에 리포트를 반환해야 한다.
func TestCheck_알림_지연(t *testing.T) {
	notifier := &stalledNotifier{}
	pub := &recordingPublisher{}
	s := newService(t, memory.New(),
		WithPublisher(pub),
		WithNotifier(notifier),
		WithSideEffectTimeout(100*time.Millisecond),
	)

	start := time.Now()
	r, err := s.Check(context.Background(), sampleGraph(t))
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, notifier.canceled.Load())
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, []string{events.TopicHealthChecked, events.TopicHealthDegraded}, pub.topics)
}

func TestWithSideEffectTimeout(t *testing.T) {
	assert.Equal(t, defaultSideEffectTimeout, newService(t, memory.New()).sideEffectTimeout)
	assert.Equal(t, defaultSideEffectTimeout, newService(t, memory.New(), WithSideEffectTimeout(0)).sideEffectTimeout)
	assert.Equal(t, time.Second, newService(t, memory.New(), WithSideEffectTimeout(time.Second)).sideEffectTimeout)
}

// 요청이 이미 끝났어도 모든 노드를 확인하지만, 리포트는 저장되지 않는다.
func TestCheck_종료된_요청(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	st := memory.New()
	pub := &recordingPublisher{}
	s := newService(t, st, WithPublisher(pub))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := s.Check(ctx, model.Graph{Nodes: []model.Node{
		{ID: "a", Name: "A", HealthEndpoint: srv.URL},
		{ID: "b", Name: "B", HealthEndpoint: srv.URL},
	}})

	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, apperrors.Is(err, apperrors.Timeout))
	assert.Equal(t, int32(2), hits.Load(), "노드 확인은 호출자 취소와 무관하게 수행되어야 합니다")

	history, err := st.ListRecent(context.Background(), store.DefaultHistoryLimit)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, pub.topics)
}

func TestHistory(t *testing.T) {
	st := memory.New()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var i int
	s := newService(t, st, WithAssembler(report.NewAssembler(nil, func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	})))

	for range 3 {
		_, err := s.Check(context.Background(), model.Graph{})
		require.NoError(t, err)
	}

	got, err := s.History(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].CheckedAt.After(got[1].CheckedAt))
	assert.True(t, got[1].CheckedAt.After(got[2].CheckedAt))
}

func TestHistory_빈_저장소(t *testing.T) {
	got, err := newService(t, memory.New()).History(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHistory_저장소_실패(t *testing.T) {
	_, err := newService(t, failingStore{}).History(context.Background())

	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestGet_없음(t *testing.T) {
	_, err := newService(t, memory.New()).Get(context.Background(), "missing")

	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}
