// Package dag 서비스 의존성 그래프의 인접 리스트 구성과 순회 순서 계산을 담당합니다.
package dag

import "github.com/darkkaiser/dag-health-monitor/internal/model"

// BuildAdjacency 노드와 간선 목록으로 인접 리스트를 만듭니다.
//
// 모든 노드는 후속 노드가 없더라도 항목을 가집니다. 출발 노드가 노드 집합에 없는 간선은
// 무시하며, 도착 노드가 노드 집합에 없는 간선은 그대로 기록합니다. 에러는 반환하지 않습니다.
func BuildAdjacency(nodes []model.Node, edges []model.Edge) model.AdjacencyMap {
	adj := make(model.AdjacencyMap, len(nodes))
	for _, n := range nodes {
		if _, exists := adj[n.ID]; !exists {
			adj[n.ID] = []string{}
		}
	}

	for _, e := range edges {
		if _, ok := adj[e.From]; ok {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	return adj
}
