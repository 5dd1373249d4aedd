package model

// NodeStatus 단일 노드의 프로브 결과 상태입니다.
type NodeStatus string

const (
	NodeHealthy     NodeStatus = "healthy"
	NodeUnhealthy   NodeStatus = "unhealthy"
	NodeUnreachable NodeStatus = "unreachable"
)

// OverallStatus 전체 그래프의 종합 상태입니다.
type OverallStatus string

const (
	OverallHealthy   OverallStatus = "healthy"
	OverallUnhealthy OverallStatus = "unhealthy"
	OverallCritical  OverallStatus = "critical"
)

// Severity 상태의 심각도를 비교 가능한 정수로 반환합니다. (healthy=0, unhealthy=1, critical=2)
func (s OverallStatus) Severity() int {
	switch s {
	case OverallHealthy:
		return 0
	case OverallUnhealthy:
		return 1
	case OverallCritical:
		return 2
	default:
		return -1
	}
}

// ParseOverallStatus 문자열을 OverallStatus로 변환합니다.
func ParseOverallStatus(s string) (OverallStatus, bool) {
	switch st := OverallStatus(s); st {
	case OverallHealthy, OverallUnhealthy, OverallCritical:
		return st, true
	default:
		return "", false
	}
}
