package report

import (
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	"github.com/google/uuid"
)

// IDGenerator 리포트 식별자 생성 함수입니다.
type IDGenerator func() string

// NewUUID UUIDv4 문자열 식별자를 생성합니다.
func NewUUID() string {
	return uuid.NewString()
}

// Assembler 순회 순서, 노드별 결과, 그래프 메타데이터를 하나의 리포트로 조립합니다.
type Assembler struct {
	newID IDGenerator
	now   func() time.Time
}

// NewAssembler 새로운 Assembler를 생성합니다. nil 인자는 기본값(UUIDv4, time.Now)으로 대체됩니다.
func NewAssembler(newID IDGenerator, now func() time.Time) *Assembler {
	if newID == nil {
		newID = NewUUID
	}
	if now == nil {
		now = time.Now
	}
	return &Assembler{newID: newID, now: now}
}

// Assemble 새 식별자와 완료 시각을 부여한 리포트를 생성합니다.
//
// results는 order와 같은 순서여야 합니다. 입력 슬라이스는 복사되므로 이후 호출자가 변경해도
// 리포트에는 영향이 없습니다.
func (a *Assembler) Assemble(graph model.Graph, order []string, results []model.NodeHealthResult) *model.HealthReport {
	return &model.HealthReport{
		DAGID:          a.newID(),
		OverallStatus:  Aggregate(results),
		Nodes:          append(make([]model.NodeHealthResult, 0, len(results)), results...),
		GraphData:      Project(graph),
		TraversalOrder: append(make([]string, 0, len(order)), order...),
		CheckedAt:      a.now().UTC(),
	}
}

// Project 요청 그래프를 시각화용 메타데이터로 투영합니다.
func Project(graph model.Graph) model.GraphData {
	data := model.GraphData{
		Nodes: make([]model.GraphNode, 0, len(graph.Nodes)),
		Edges: make([]model.GraphEdge, 0, len(graph.Edges)),
	}
	for _, n := range graph.Nodes {
		data.Nodes = append(data.Nodes, model.GraphNode{ID: n.ID, Label: n.Name, HealthEndpoint: n.HealthEndpoint})
	}
	for _, e := range graph.Edges {
		data.Edges = append(data.Edges, model.GraphEdge{From: e.From, To: e.To})
	}
	return data
}
