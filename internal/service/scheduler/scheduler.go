// Package scheduler 설정 파일에 정의된 그래프 헬스체크 작업을 Cron 스케줄에 맞춰 실행합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/graphfile"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/validator"
	"github.com/darkkaiser/dag-health-monitor/internal/service/healthcheck"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// DefaultJobTimeout 작업 한 번(그래프 로드, 프로브, 저장)에 허용하는 최대 시간
const DefaultJobTimeout = 30 * time.Second

// GraphLoader 작업 실행 시점마다 그래프 파일을 읽습니다. 실행 중 파일을 수정하면 다음 실행부터 반영됩니다.
type GraphLoader func(path string) (model.Graph, error)

// Scheduler 설정된 작업을 주기적으로 실행하는 서비스입니다.
type Scheduler struct {
	jobs []config.JobConfig

	checker   healthcheck.Checker
	loadGraph GraphLoader

	jobTimeout time.Duration

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// Option Scheduler 설정을 변경하는 함수입니다.
type Option func(*Scheduler)

// WithGraphLoader 그래프 파일 로더를 교체합니다.
func WithGraphLoader(l GraphLoader) Option {
	return func(s *Scheduler) { s.loadGraph = l }
}

// WithJobTimeout 작업 타임아웃을 변경합니다. 0 이하이면 무시합니다.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.jobTimeout = d
		}
	}
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(jobs []config.JobConfig, checker healthcheck.Checker, opts ...Option) *Scheduler {
	if checker == nil {
		panic("Checker는 필수입니다")
	}

	s := &Scheduler{
		jobs:       jobs,
		checker:    checker,
		loadGraph:  graphfile.Load,
		jobTimeout: DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start 작업을 Cron 엔진에 등록하고 스케줄러를 시작합니다.
//
// serviceStopCtx가 취소되면 실행 중인 작업이 끝날 때까지 기다린 뒤 serviceStopWG.Done()을 호출합니다.
// 잘못된 Cron 표현식을 가진 작업은 로그만 남기고 건너뜁니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Scheduler 서비스 시작중...")

	if s.checker == nil {
		serviceStopWG.Done()
		return ErrCheckerNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// 1. Cron 엔진 초기화
	//   - 초 단위 6필드 표현식과 @every 등의 Descriptor 지원
	//   - Recover: 작업의 panic이 다른 작업에 영향을 주지 않음
	//   - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 이번 실행을 건너뜀
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(validator.CronParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	// 2. 작업 등록
	registered := s.registerJobs()

	// 3. 스케줄러 시작
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_jobs": registered,
		"defined_jobs":    len(s.jobs),
	}).Info("Scheduler 서비스 시작됨")

	// 4. 종료 신호 대기
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 스케줄러를 중지하고 실행 중인 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Scheduler 서비스 중지중...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 중지됨")
}

// Running 스케줄러 실행 여부를 반환합니다.
func (s *Scheduler) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}

func (s *Scheduler) registerJobs() int {
	registered := 0
	for _, job := range s.jobs {
		if _, err := s.cron.AddFunc(job.TimeSpec, func() { s.RunJob(job) }); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"job_id": job.ID,
				"error":  NewErrInvalidCronSpec(job.ID, job.TimeSpec, err),
			}).Error("스케줄 등록 실패: 작업을 건너뜁니다")
			continue
		}
		registered++
	}
	return registered
}

// RunJob 작업 하나를 즉시 실행합니다.
//
// 실행 Context는 스케줄러 종료 신호와 분리되어 있습니다. 종료 시 cron.Stop()이 실행 중인 작업의
// 완료를 기다리므로, 진행 중인 헬스체크는 중단되지 않고 jobTimeout으로만 제한됩니다.
func (s *Scheduler) RunJob(job config.JobConfig) {
	fields := applog.Fields{
		"job_id":     job.ID,
		"graph_file": job.GraphFile,
	}

	graph, err := s.loadGraph(job.GraphFile)
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("작업 실패: 그래프 파일을 읽을 수 없습니다")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	r, err := s.checker.Check(ctx, graph)
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("작업 실패: 헬스체크를 실행하지 못했습니다")
		return
	}

	fields["dag_id"] = r.DAGID
	fields["overall_status"] = r.OverallStatus
	applog.WithComponentAndFields(component, fields).Info("예약된 헬스체크 완료")
}
