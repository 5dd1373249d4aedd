package main

import (
	"context"
	"io"

	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/events"
	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/service/alert"
	"github.com/darkkaiser/dag-health-monitor/internal/service/alert/telegram"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
	"github.com/darkkaiser/dag-health-monitor/internal/store/file"
	"github.com/darkkaiser/dag-health-monitor/internal/store/memory"
	"github.com/darkkaiser/dag-health-monitor/internal/store/postgres"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

// component main 패키지의 로깅용 컴포넌트 이름
const component = "main"

// newStore 설정된 드라이버에 맞는 저장소를 생성합니다.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		return memory.New(), nil
	case config.StoreDriverFile:
		s, err := file.New(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreDriverPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 저장소 드라이버입니다: '%s'", cfg.Driver)
	}
}

// newPublisher NATS 주소가 설정되어 있으면 NATS 발행자를, 아니면 아무것도 하지 않는 발행자를 반환합니다.
func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		applog.WithComponent(component).Info("이벤트 발행 비활성화 (events.nats_url 미설정)")
		return events.NoopPublisher{}, nil
	}

	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	applog.WithComponentAndFields(component, applog.Fields{
		"nats_url": cfg.NATSURL,
	}).Info("이벤트 발행 활성화")
	return pub, nil
}

// newNotifier 텔레그램 알림이 활성화되어 있으면 최소 상태 조건을 적용한 Notifier를 반환합니다.
func newNotifier(cfg config.AlertConfig, debug bool) (alert.Notifier, error) {
	if !cfg.Telegram.Enabled {
		return alert.Nop{}, nil
	}

	tg, err := telegram.New(telegram.Config{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		Debug:    debug,
	})
	if err != nil {
		return nil, err
	}
	return alert.NewThreshold(model.OverallStatus(cfg.MinStatus), tg), nil
}

// closeQuietly 종료 시점의 Close 실패는 로그만 남깁니다.
func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"resource": name,
			"error":    err,
		}).Warn("리소스 정리 실패")
	}
}
