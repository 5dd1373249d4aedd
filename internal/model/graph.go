// Package model 헬스체크 요청, 노드별 결과, 리포트 등 도메인 데이터 구조를 정의합니다.
package model

// Node 의존성 그래프를 구성하는 하나의 서비스입니다.
type Node struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`

	// HealthEndpoint 비어 있거나 잘못된 주소는 검증 오류가 아니라 unreachable 결과가 됩니다.
	HealthEndpoint string `json:"health_endpoint" yaml:"health_endpoint"`

	// Dependencies 참고용 정보이며 순회 순서에는 영향을 주지 않습니다. 순회는 Edges만 사용합니다.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// Edge From이 To에 의존함을 나타내는 방향 간선입니다.
//
// 존재하지 않는 노드(빈 문자열 포함)를 가리키는 간선은 오류 없이 순회에서 제외됩니다.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph 헬스체크 요청 본문입니다.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" validate:"unique=ID,dive"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// AdjacencyMap 노드 ID별 후속 노드 ID 목록입니다.
type AdjacencyMap map[string][]string
