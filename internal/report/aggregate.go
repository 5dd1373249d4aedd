// Package report 노드별 프로브 결과를 종합 상태로 집계하고 헬스 리포트를 조립합니다.
package report

import "github.com/darkkaiser/dag-health-monitor/internal/model"

// Aggregate 노드별 결과로 전체 상태를 계산합니다.
//
// 비정상 노드가 없으면 healthy(결과가 비어 있는 경우 포함), 모두 비정상이면 critical,
// 그 외에는 unhealthy입니다.
func Aggregate(results []model.NodeHealthResult) model.OverallStatus {
	unhealthy := 0
	for _, r := range results {
		if r.Status != model.NodeHealthy {
			unhealthy++
		}
	}

	switch {
	case unhealthy == 0:
		return model.OverallHealthy
	case unhealthy < len(results):
		return model.OverallUnhealthy
	default:
		return model.OverallCritical
	}
}
