// Package metrics 프로브, 헬스체크, HTTP 요청에 대한 Prometheus 메트릭을 수집합니다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
)

// Namespace 모든 메트릭 이름의 접두사
const Namespace = "dag_health"

// Collector 애플리케이션 메트릭 모음입니다. 전역 레지스트리 대신 인스턴스별 레지스트리를 사용합니다.
type Collector struct {
	registry *prometheus.Registry

	probesTotal   *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec

	checksTotal   *prometheus.CounterVec
	checkDuration prometheus.Histogram
	checkNodes    prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New 새로운 Collector를 생성하고 Go 런타임, 프로세스 메트릭과 함께 등록합니다.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		probesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "probes_total",
			Help:      "Total number of node probes by resulting status.",
		}, []string{"status"}),
		probeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "probe_duration_seconds",
			Help:      "Node probe latency in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"status"}),

		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checks_total",
			Help:      "Total number of completed DAG health checks by overall status.",
		}, []string{"overall_status"}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "check_duration_seconds",
			Help:      "End-to-end DAG health check latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		checkNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "check_nodes",
			Help:      "Number of nodes per DAG health check.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.probesTotal,
		c.probeDuration,
		c.checksTotal,
		c.checkDuration,
		c.checkNodes,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// ObserveProbe probe.Recorder 인터페이스를 구현합니다.
func (c *Collector) ObserveProbe(status model.NodeStatus, elapsed time.Duration) {
	c.probesTotal.WithLabelValues(string(status)).Inc()
	c.probeDuration.WithLabelValues(string(status)).Observe(elapsed.Seconds())
}

// ObserveCheck 헬스체크 한 건의 결과를 기록합니다.
func (c *Collector) ObserveCheck(status model.OverallStatus, nodes int, elapsed time.Duration) {
	c.checksTotal.WithLabelValues(string(status)).Inc()
	c.checkDuration.Observe(elapsed.Seconds())
	c.checkNodes.Observe(float64(nodes))
}

// ObserveHTTP HTTP 요청 한 건을 기록합니다. route는 경로 패턴이어야 합니다. (예: /api/dag/history/:id)
func (c *Collector) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry 메트릭 레지스트리를 반환합니다.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler Prometheus 노출 형식의 HTTP 핸들러를 반환합니다.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
