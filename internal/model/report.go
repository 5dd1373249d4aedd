package model

import (
	"slices"
	"time"
)

// NodeHealthResult 단일 노드에 대한 프로브 결과입니다.
//
// ResponseTimeMs는 HTTP 응답을 수신한 경우에만 존재합니다.
type NodeHealthResult struct {
	NodeID         string     `json:"node_id"`
	NodeName       string     `json:"node_name"`
	Status         NodeStatus `json:"status"`
	ResponseTimeMs *float64   `json:"response_time_ms,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CheckedAt      time.Time  `json:"checked_at"`
}

// GraphNode 시각화용 노드 정보입니다.
type GraphNode struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	HealthEndpoint string `json:"health_endpoint"`
}

// GraphEdge 시각화용 간선 정보입니다.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphData 요청 그래프를 그대로 투영한 시각화 메타데이터입니다.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// HealthReport 한 번의 헬스체크 결과입니다. 조립된 이후에는 변경하지 않습니다.
type HealthReport struct {
	DAGID          string             `json:"dag_id"`
	OverallStatus  OverallStatus      `json:"overall_status"`
	Nodes          []NodeHealthResult `json:"nodes"`
	GraphData      GraphData          `json:"graph_data"`
	TraversalOrder []string           `json:"traversal_order"`
	CheckedAt      time.Time          `json:"checked_at"`
}

// UnhealthyNodes 정상이 아닌 노드 결과만 순서대로 반환합니다.
func (r *HealthReport) UnhealthyNodes() []NodeHealthResult {
	var out []NodeHealthResult
	for _, n := range r.Nodes {
		if n.Status != NodeHealthy {
			out = append(out, n)
		}
	}
	return out
}

// Clone 슬라이스를 포함한 리포트 전체를 복사합니다.
func (r *HealthReport) Clone() *HealthReport {
	if r == nil {
		return nil
	}

	c := *r
	c.Nodes = slices.Clone(r.Nodes)
	for i, n := range c.Nodes {
		if n.ResponseTimeMs != nil {
			ms := *n.ResponseTimeMs
			c.Nodes[i].ResponseTimeMs = &ms
		}
	}
	c.GraphData.Nodes = slices.Clone(r.GraphData.Nodes)
	c.GraphData.Edges = slices.Clone(r.GraphData.Edges)
	c.TraversalOrder = slices.Clone(r.TraversalOrder)
	return &c
}
