// Package healthcheck 그래프 순회, 노드 프로브, 집계, 리포트 조립과 저장을 하나의 헬스체크로 묶습니다.
package healthcheck

import (
	"context"
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/dag"
	"github.com/darkkaiser/dag-health-monitor/internal/events"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/report"
	"github.com/darkkaiser/dag-health-monitor/internal/service/alert"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "healthcheck.service"

// defaultSideEffectTimeout 저장 이후의 이벤트 발행과 알림 발송에 허용하는 기본 시간
//
// 발송은 응답 전에 동기적으로 수행되므로 이 값만큼 응답이 늦어질 수 있습니다.
const defaultSideEffectTimeout = 5 * time.Second

// Prober 노드 목록을 프로브하는 인터페이스입니다. (*probe.Prober)
type Prober interface {
	ProbeAll(ctx context.Context, nodes []model.Node) []model.NodeHealthResult
}

// Recorder 헬스체크 결과를 관측하는 인터페이스입니다. (*metrics.Collector)
type Recorder interface {
	ObserveCheck(status model.OverallStatus, nodes int, elapsed time.Duration)
}

// Checker 헬스체크 실행과 이력 조회 인터페이스입니다. API, 스케줄러, CLI가 사용합니다.
type Checker interface {
	Check(ctx context.Context, graph model.Graph) (*model.HealthReport, error)
	History(ctx context.Context) ([]*model.HealthReport, error)
	Get(ctx context.Context, id string) (*model.HealthReport, error)
}

// Service Checker 구현체입니다.
type Service struct {
	prober    Prober
	assembler *report.Assembler
	store     store.Store

	publisher events.Publisher
	notifier  alert.Notifier
	recorder  Recorder

	sideEffectTimeout time.Duration

	now func() time.Time
}

var _ Checker = (*Service)(nil)

// Option Service 설정을 변경하는 함수입니다.
type Option func(*Service)

func WithAssembler(a *report.Assembler) Option {
	return func(s *Service) { s.assembler = a }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithNotifier(n alert.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithSideEffectTimeout 이벤트 발행과 알림 발송을 합친 최대 대기 시간을 지정합니다. 0 이하의 값은 무시합니다.
func WithSideEffectTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sideEffectTimeout = d
		}
	}
}

// NewService 새로운 Service를 생성합니다. prober와 st는 필수입니다.
func NewService(prober Prober, st store.Store, opts ...Option) *Service {
	if prober == nil {
		panic("Prober는 필수입니다")
	}
	if st == nil {
		panic("Store는 필수입니다")
	}

	s := &Service{
		prober:    prober,
		assembler: report.NewAssembler(nil, nil),
		store:     st,
		publisher: events.NoopPublisher{},
		notifier:  alert.Nop{},

		sideEffectTimeout: defaultSideEffectTimeout,

		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Check 그래프 전체에 대한 헬스체크를 수행하고 리포트를 저장한 뒤 반환합니다.
//
// 개별 노드의 프로브 실패는 리포트 데이터로 표현되며 에러가 아닙니다.
// 리포트 저장에 실패하면 리포트를 반환하지 않습니다.
func (s *Service) Check(ctx context.Context, graph model.Graph) (*model.HealthReport, error) {
	start := s.now()

	// 1. 그래프 구성 및 순회 순서 결정
	adj := dag.BuildAdjacency(graph.Nodes, graph.Edges)
	order := dag.Traverse(graph.Nodes, graph.Edges, adj)

	// 2. 순회 순서대로 프로브
	results := s.prober.ProbeAll(ctx, dag.OrderNodes(graph.Nodes, order))

	// 3. 집계 및 리포트 조립
	r := s.assembler.Assemble(graph, order, results)

	// 4. 저장
	if err := s.store.Insert(ctx, r); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dag_id": r.DAGID,
			"error":  err,
		}).Error("헬스체크 리포트 저장 실패")
		return nil, apperrors.Wrap(err, apperrors.Internal, "헬스체크 리포트를 저장하지 못했습니다")
	}

	elapsed := s.now().Sub(start)
	if s.recorder != nil {
		s.recorder.ObserveCheck(r.OverallStatus, len(r.Nodes), elapsed)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"dag_id":         r.DAGID,
		"overall_status": r.OverallStatus,
		"nodes":          len(r.Nodes),
		"unhealthy":      len(r.UnhealthyNodes()),
		"elapsed":        elapsed.String(),
	}).Info("헬스체크 완료")

	// 5. 이벤트 발행 및 알림 (실패해도 결과에는 영향이 없다)
	s.dispatch(ctx, r)

	return r, nil
}

func (s *Service) dispatch(ctx context.Context, r *model.HealthReport) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()

	if err := events.PublishReport(ctx, s.publisher, r); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dag_id": r.DAGID,
			"error":  err,
		}).Warn("헬스체크 이벤트 발행 실패")
	}

	if err := s.notifier.Notify(ctx, r); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dag_id": r.DAGID,
			"error":  err,
		}).Warn("헬스체크 알림 발송 실패")
	}
}

// History 최근 리포트를 최대 100개까지 최신순으로 반환합니다.
func (s *Service) History(ctx context.Context) ([]*model.HealthReport, error) {
	reports, err := s.store.ListRecent(ctx, store.DefaultHistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "헬스체크 이력을 조회하지 못했습니다")
	}
	if reports == nil {
		reports = []*model.HealthReport{}
	}
	return reports, nil
}

// Get 식별자로 리포트를 조회합니다. 없으면 NotFound 에러를 반환합니다.
func (s *Service) Get(ctx context.Context, id string) (*model.HealthReport, error) {
	return s.store.FindByID(ctx, id)
}

// Ping 저장소 연결 상태를 확인합니다.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
