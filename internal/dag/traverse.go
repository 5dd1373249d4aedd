package dag

import "github.com/darkkaiser/dag-health-monitor/internal/model"

// Traverse 그래프의 방문 순서를 계산합니다. 결과에는 모든 노드 ID가 정확히 한 번씩 포함됩니다.
//
//  1. 어떤 간선의 도착지도 아닌 노드를 루트로 삼는다. 루트가 없으면(순환 그래프 등) 입력 순서상 첫 노드를 루트로 사용한다.
//  2. 루트들을 입력 순서대로 큐에 넣고 BFS를 수행한다. 방문 표시는 큐에서 꺼낼 때 한다.
//  3. BFS로 도달하지 못한 노드는 입력 순서대로 뒤에 덧붙인다.
func Traverse(nodes []model.Node, edges []model.Edge, adj model.AdjacencyMap) []string {
	if len(nodes) == 0 {
		return []string{}
	}

	known := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		known[n.ID] = struct{}{}
	}

	targets := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		targets[e.To] = struct{}{}
	}

	var roots []string
	for _, n := range nodes {
		if _, isTarget := targets[n.ID]; !isTarget {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{nodes[0].ID}
	}

	order := make([]string, 0, len(nodes))
	visited := make(map[string]bool, len(nodes))

	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, current)

		for _, next := range adj[current] {
			if _, ok := known[next]; !ok {
				continue
			}
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	for _, n := range nodes {
		if !visited[n.ID] {
			visited[n.ID] = true
			order = append(order, n.ID)
		}
	}

	return order
}

// OrderNodes 방문 순서에 맞춰 노드를 재배열합니다. 같은 ID가 여러 번 있으면 첫 번째 노드를 사용합니다.
func OrderNodes(nodes []model.Node, order []string) []model.Node {
	byID := make(map[string]model.Node, len(nodes))
	for _, n := range nodes {
		if _, exists := byID[n.ID]; !exists {
			byID[n.ID] = n
		}
	}

	ordered := make([]model.Node, 0, len(order))
	for _, id := range order {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered
}
