package notify

import (
	"context"
	"sync"

	"github.com/osfio/collections-moderation/internal/domain"
)

var _ sender = &senderMock{}

type senderMock struct {
	SendFunc func(ctx context.Context, entry *domain.OutboxEntry) error

	calls struct {
		Send []struct {
			Ctx   context.Context
			Entry *domain.OutboxEntry
		}
	}
	lockSend sync.RWMutex
}

func (mock *senderMock) Send(ctx context.Context, entry *domain.OutboxEntry) error {
	if mock.SendFunc == nil {
		panic("senderMock.SendFunc: method is nil but sender.Send was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry *domain.OutboxEntry
	}{Ctx: ctx, Entry: entry}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, entry)
}

func (mock *senderMock) SendCalls() []struct {
	Ctx   context.Context
	Entry *domain.OutboxEntry
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
