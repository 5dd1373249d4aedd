// Package probe 그래프의 각 노드에 대한 HTTP 헬스 프로브를 동시에 수행합니다.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
	"golang.org/x/sync/errgroup"
)

// component 로깅용 컴포넌트 이름
const component = "probe"

const (
	// DefaultTimeout 노드 하나에 대한 프로브의 최대 대기 시간
	DefaultTimeout = 10 * time.Second

	// ErrMsgTimeout 프로브 타임아웃 시 결과에 기록되는 에러 메시지
	ErrMsgTimeout = "Request timeout"
)

// Recorder 프로브 결과를 관측하는 인터페이스입니다. (메트릭 수집 등)
type Recorder interface {
	ObserveProbe(status model.NodeStatus, elapsed time.Duration)
}

// FetcherFactory 헬스체크 요청 하나 동안 공유할 Fetcher를 생성합니다.
// 반환된 Fetcher가 io.Closer를 구현하면 요청 종료 시 닫힙니다.
type FetcherFactory func() Fetcher

// Config 프로버 설정입니다.
type Config struct {
	// Timeout 노드별 프로브 타임아웃 (0: DefaultTimeout)
	Timeout time.Duration

	// MaxConcurrency 동시에 진행할 프로브 수의 상한 (0 이하: 무제한)
	MaxConcurrency int

	UserAgent string
}

// Prober 노드 목록에 대해 헬스 프로브를 동시에 수행합니다.
type Prober struct {
	timeout        time.Duration
	maxConcurrency int

	newFetcher FetcherFactory
	recorder   Recorder
	now        func() time.Time
}

// Option Prober 설정을 변경하는 함수입니다.
type Option func(*Prober)

// WithFetcherFactory 요청 단위 Fetcher 생성 방식을 교체합니다.
func WithFetcherFactory(f FetcherFactory) Option {
	return func(p *Prober) {
		p.newFetcher = f
	}
}

// WithRecorder 프로브 결과 관측자를 설정합니다.
func WithRecorder(r Recorder) Option {
	return func(p *Prober) {
		p.recorder = r
	}
}

// WithClock 결과 시각 계산에 사용할 시계를 교체합니다.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// New 새로운 Prober를 생성합니다.
func New(cfg Config, opts ...Option) *Prober {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	p := &Prober{
		timeout:        timeout,
		maxConcurrency: cfg.MaxConcurrency,
		now:            time.Now,
	}
	p.newFetcher = func() Fetcher {
		return NewHTTPFetcher(WithUserAgent(cfg.UserAgent))
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Timeout 노드별 프로브 타임아웃을 반환합니다.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// ProbeAll 모든 노드를 동시에 프로브하고, 모든 프로브가 끝날 때까지 기다린 뒤 결과를 반환합니다.
//
// 결과는 nodes와 같은 순서입니다. 개별 프로브의 실패는 결과 데이터로만 표현되며 전체 작업을 중단시키지 않습니다.
// 호출자 Context의 취소는 프로브에 전파되지 않으며, 프로브는 노드별 타임아웃으로만 제한됩니다.
func (p *Prober) ProbeAll(ctx context.Context, nodes []model.Node) []model.NodeHealthResult {
	results := make([]model.NodeHealthResult, len(nodes))
	if len(nodes) == 0 {
		return results
	}

	// 1. 요청 단위 세션 생성 (요청 종료 시 해제)
	f := p.newFetcher()
	if c, ok := f.(io.Closer); ok {
		defer c.Close()
	}

	probeCtx := context.WithoutCancel(ctx)

	// 2. Fan-out: 각 고루틴은 자신의 인덱스 슬롯에만 기록한다
	var g errgroup.Group
	if p.maxConcurrency > 0 {
		g.SetLimit(p.maxConcurrency)
	}
	for i, node := range nodes {
		g.Go(func() error {
			results[i] = p.Probe(probeCtx, f, node)
			return nil
		})
	}

	// 3. Fan-in
	_ = g.Wait()

	return results
}

// Probe 노드 하나에 GET 요청을 보내고 결과를 분류합니다.
//
//   - 200 응답: healthy
//   - 그 외 응답: unhealthy ("HTTP <상태코드>")
//   - 타임아웃: unreachable ("Request timeout")
//   - 그 외 전송 실패: unreachable (실패 원인)
//
// 응답 시간은 응답을 수신한 경우에만 밀리초 단위(소수점 둘째 자리 반올림)로 기록됩니다.
func (p *Prober) Probe(ctx context.Context, f Fetcher, node model.Node) model.NodeHealthResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := model.NodeHealthResult{
		NodeID:   node.ID,
		NodeName: node.Name,
	}

	start := p.now()
	resp, err := Get(ctx, f, node.HealthEndpoint)
	elapsed := p.now().Sub(start)

	if err != nil {
		result.Status = model.NodeUnreachable
		if isTimeout(ctx, err) {
			result.ErrorMessage = ErrMsgTimeout
		} else {
			result.ErrorMessage = err.Error()
		}
	} else {
		drainAndCloseBody(resp.Body)

		ms := roundMillis(elapsed)
		result.ResponseTimeMs = &ms

		if resp.StatusCode == http.StatusOK {
			result.Status = model.NodeHealthy
		} else {
			result.Status = model.NodeUnhealthy
			result.ErrorMessage = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}
	result.CheckedAt = p.now().UTC()

	if p.recorder != nil {
		p.recorder.ObserveProbe(result.Status, elapsed)
	}

	entry := applog.WithComponentAndFields(component, applog.Fields{
		"node_id":         node.ID,
		"health_endpoint": node.HealthEndpoint,
		"status":          result.Status,
		"elapsed":         elapsed.String(),
	})
	if result.Status == model.NodeHealthy {
		entry.Debug("노드 프로브 완료")
	} else {
		entry.WithField("error", result.ErrorMessage).Warn("노드 프로브 실패: 노드가 정상 상태가 아닙니다")
	}

	return result
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
