package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"

	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
)

// flushTimeout 종료 시 버퍼에 남은 메시지를 전송하기 위해 기다리는 최대 시간
const flushTimeout = 5 * time.Second

// NATSPublisher 이벤트를 JSON으로 인코딩하여 NATS subject로 발행합니다.
type NATSPublisher struct {
	conn *nats.Conn
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher NATS 서버에 연결합니다. 연결이 끊기면 자동으로 재연결을 시도합니다.
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	defaults := []nats.Option{
		nats.Name("dag-health-monitor"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "NATS 서버(%s)에 연결할 수 없습니다", url)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "이벤트 직렬화에 실패했습니다")
	}
	if err := p.conn.Publish(topic, data); err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "이벤트 발행에 실패했습니다 (topic=%s)", topic)
	}
	return nil
}

// Close 버퍼에 남은 메시지를 전송한 뒤 연결을 닫습니다.
func (p *NATSPublisher) Close() error {
	defer p.conn.Close()

	if err := p.conn.FlushTimeout(flushTimeout); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return apperrors.Wrap(err, apperrors.Unavailable, "NATS 버퍼 전송에 실패했습니다")
	}
	return nil
}
