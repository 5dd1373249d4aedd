// Package events 헬스체크 완료 이벤트를 외부 메시지 브로커로 발행합니다.
package events

import (
	"context"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
)

const (
	// TopicHealthChecked 모든 헬스체크 완료 시 발행
	TopicHealthChecked = "dag.health.checked"

	// TopicHealthDegraded 종합 상태가 healthy가 아닌 헬스체크 완료 시 추가로 발행
	TopicHealthDegraded = "dag.health.degraded"
)

// HealthChecked 헬스체크 완료 이벤트 페이로드입니다.
type HealthChecked struct {
	Report *model.HealthReport `json:"report"`
}

// Publisher 이벤트 발행 인터페이스입니다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// PublishReport 리포트에 해당하는 토픽들로 이벤트를 발행합니다.
func PublishReport(ctx context.Context, p Publisher, r *model.HealthReport) error {
	ev := HealthChecked{Report: r}
	if err := p.Publish(ctx, TopicHealthChecked, ev); err != nil {
		return err
	}
	if r.OverallStatus != model.OverallHealthy {
		return p.Publish(ctx, TopicHealthDegraded, ev)
	}
	return nil
}
