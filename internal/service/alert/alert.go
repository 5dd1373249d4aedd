// Package alert 종합 상태가 악화된 헬스체크 리포트를 운영자에게 알립니다.
package alert

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
)

// Notifier 리포트 알림 발송 인터페이스입니다.
type Notifier interface {
	Notify(ctx context.Context, report *model.HealthReport) error
}

// Nop 아무 알림도 보내지 않습니다.
type Nop struct{}

func (Nop) Notify(context.Context, *model.HealthReport) error { return nil }

// Threshold 종합 상태가 MinStatus 이상인 리포트만 Next로 전달합니다.
type Threshold struct {
	MinStatus model.OverallStatus
	Next      Notifier
}

var _ Notifier = (*Threshold)(nil)

// NewThreshold minStatus는 unhealthy 또는 critical이어야 합니다. 그 외의 값이면 unhealthy로 간주합니다.
func NewThreshold(minStatus model.OverallStatus, next Notifier) *Threshold {
	if minStatus.Severity() < model.OverallUnhealthy.Severity() {
		minStatus = model.OverallUnhealthy
	}
	return &Threshold{MinStatus: minStatus, Next: next}
}

func (t *Threshold) Notify(ctx context.Context, report *model.HealthReport) error {
	if report == nil || !t.ShouldNotify(report.OverallStatus) {
		return nil
	}
	return t.Next.Notify(ctx, report)
}

// ShouldNotify 해당 상태가 알림 대상인지 반환합니다.
func (t *Threshold) ShouldNotify(status model.OverallStatus) bool {
	return status.Severity() >= t.MinStatus.Severity()
}

const (
	// maxNameRunes 노드 이름과 식별자를 메시지에 표시할 최대 길이
	maxNameRunes = 64

	// maxErrorRunes 노드 에러 메시지를 메시지에 표시할 최대 길이
	maxErrorRunes = 200
)

// FormatHTML 리포트를 텔레그램 HTML 파싱 모드용 메시지로 변환합니다.
//
// 정상이 아닌 노드만 나열하며 사용자 입력 값은 모두 이스케이프됩니다.
// limit(바이트)이 0보다 크면 노드 줄 단위로만 생략하여 결과가 limit을 넘지 않게 하고,
// 생략된 노드 수를 마지막 줄에 표시합니다. 태그나 엔티티가 중간에 잘리는 일은 없습니다.
func FormatHTML(r *model.HealthReport, limit int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>[DAG 헬스체크] %s</b>\n", strings.ToUpper(string(r.OverallStatus)))
	fmt.Fprintf(&sb, "ID: <code>%s</code>\n", html.EscapeString(clip(r.DAGID, maxNameRunes)))
	fmt.Fprintf(&sb, "검사 시각: %s\n", r.CheckedAt.Format("2006-01-02 15:04:05 MST"))

	unhealthy := r.UnhealthyNodes()
	fmt.Fprintf(&sb, "비정상 노드: %d/%d\n", len(unhealthy), len(r.Nodes))

	for i, n := range unhealthy {
		line := nodeLine(n)
		if limit > 0 {
			// 이후 노드를 생략하게 될 경우에 대비해 생략 안내 줄의 자리를 남겨 둔다
			var reserve int
			if rest := len(unhealthy) - i - 1; rest > 0 {
				reserve = len(omittedLine(rest))
			}
			if sb.Len()+len(line)+reserve > limit {
				sb.WriteString(omittedLine(len(unhealthy) - i))
				break
			}
		}
		sb.WriteString(line)
	}

	return sb.String()
}

func nodeLine(n model.NodeHealthResult) string {
	line := fmt.Sprintf("\n• <b>%s</b> (%s): %s", html.EscapeString(clip(n.NodeName, maxNameRunes)), html.EscapeString(clip(n.NodeID, maxNameRunes)), n.Status)
	if n.ErrorMessage != "" {
		line += " - " + html.EscapeString(clip(n.ErrorMessage, maxErrorRunes))
	}
	return line
}

func omittedLine(n int) string {
	return fmt.Sprintf("\n… 외 %d개 노드", n)
}

// clip 이스케이프 전의 원문을 룬 단위로 자릅니다.
func clip(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + "…"
}
