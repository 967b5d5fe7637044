package submission

import (
	"context"
	"sync"

	"github.com/osfio/collections-moderation/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, event domain.TransitionEvent)

	calls struct {
		Notify []struct {
			Ctx   context.Context
			Event domain.TransitionEvent
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, event domain.TransitionEvent) {
	callInfo := struct {
		Ctx   context.Context
		Event domain.TransitionEvent
	}{Ctx: ctx, Event: event}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	if mock.NotifyFunc == nil {
		return
	}
	mock.NotifyFunc(ctx, event)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx   context.Context
	Event domain.TransitionEvent
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
