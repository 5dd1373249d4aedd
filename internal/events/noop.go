package events

import "context"

// NoopPublisher 메시지 브로커가 설정되지 않았을 때 사용하는 Publisher입니다.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (NoopPublisher) Publish(context.Context, string, any) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
