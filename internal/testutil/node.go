package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
)

// NodeServer 헬스 엔드포인트를 흉내 내는 테스트 서버입니다.
type NodeServer struct {
	*httptest.Server
}

// HealthURL 노드의 헬스 엔드포인트 URL
func (s *NodeServer) HealthURL() string {
	return s.URL + "/health"
}

// Node 이 서버를 가리키는 그래프 노드를 만듭니다.
func (s *NodeServer) Node(id string) model.Node {
	return model.Node{ID: id, Name: id, HealthEndpoint: s.HealthURL()}
}

// NewNodeServer 모든 요청에 status로 응답하는 노드 서버를 시작합니다. delay가 양수이면 응답 전에 대기합니다.
// 서버는 테스트 종료 시 닫힙니다.
func NewNodeServer(tb testing.TB, status int, delay time.Duration) *NodeServer {
	tb.Helper()

	stop := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			case <-stop:
				return
			}
		}
		w.WriteHeader(status)
	}))
	tb.Cleanup(func() {
		close(stop)
		srv.Close()
	})

	return &NodeServer{Server: srv}
}
