// Package telegram 텔레그램 봇으로 헬스체크 알림을 발송합니다.
package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/service/alert"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "alert.telegram"

const (
	// httpClientTimeout 텔레그램 API 호출의 최대 대기 시간
	//
	// Send는 Context를 받지 않으므로 Notify가 먼저 반환하더라도 전송 고루틴은 이 시간까지 남을 수 있습니다.
	httpClientTimeout = 5 * time.Second

	// maxMessageLength 텔레그램 메시지 본문의 최대 길이 (바이트 기준으로 보수적으로 적용)
	maxMessageLength = 4096
)

// client 테스트에서 교체할 수 있도록 tgbotapi.BotAPI 중 사용하는 메서드만 정의합니다.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Config 텔레그램 알림 설정입니다.
type Config struct {
	BotToken string
	ChatID   int64
	Debug    bool
}

// Notifier alert.Notifier의 텔레그램 구현체입니다.
type Notifier struct {
	chatID int64
	client client

	// limiter 봇 API의 채팅방당 전송 제한(초당 1건)을 지킵니다.
	limiter *rate.Limiter
}

var _ alert.Notifier = (*Notifier)(nil)

// New 봇 토큰을 검증하고 Notifier를 생성합니다. 토큰 검증을 위해 getMe API를 호출합니다.
func New(cfg Config) (*Notifier, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id": cfg.ChatID,
	}).Debug("텔레그램 봇 클라이언트 초기화")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = cfg.Debug

	return newWithClient(cfg.ChatID, botAPI), nil
}

func newWithClient(chatID int64, c client) *Notifier {
	return &Notifier{
		chatID:  chatID,
		client:  c,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Notify 리포트 요약 메시지를 전송합니다.
func (n *Notifier) Notify(ctx context.Context, report *model.HealthReport) error {
	if report == nil {
		return nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "텔레그램 메시지 전송 대기 중 취소되었습니다")
	}

	msg := tgbotapi.NewMessage(n.chatID, alert.FormatHTML(report, maxMessageLength))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if err := n.send(ctx, msg); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": n.chatID,
			"dag_id":  report.DAGID,
			"error":   err,
		}).Error("텔레그램 메시지 전송 실패")
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id":        n.chatID,
		"dag_id":         report.DAGID,
		"overall_status": report.OverallStatus,
	}).Info("텔레그램 알림 전송 완료")

	return nil
}

// send 전송 결과를 기다리되 ctx가 끝나면 즉시 반환합니다.
func (n *Notifier) send(ctx context.Context, msg tgbotapi.Chattable) error {
	done := make(chan error, 1)
	go func() {
		_, err := n.client.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다")
		}
		return nil

	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), apperrors.Timeout, "텔레그램 메시지 전송 응답을 기다리는 중 시간이 초과되었습니다")
	}
}
