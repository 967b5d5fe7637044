package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

var (
	_ outboxWriter = &outboxMock{}
	_ outboxQueue  = &outboxMock{}
)

type outboxMock struct {
	InsertFunc            func(ctx context.Context, entry *domain.OutboxEntry) error
	ClaimPendingFunc      func(ctx context.Context, limit int, lease time.Duration) ([]*domain.OutboxEntry, error)
	MarkDeliveredFunc     func(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailedAttemptFunc func(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error

	calls struct {
		Insert []struct {
			Ctx   context.Context
			Entry *domain.OutboxEntry
		}
		ClaimPending []struct {
			Ctx   context.Context
			Limit int
			Lease time.Duration
		}
		MarkDelivered []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		MarkFailedAttempt []struct {
			Ctx         context.Context
			ID          uuid.UUID
			Reason      string
			MaxAttempts int
		}
	}
	lockInsert            sync.RWMutex
	lockClaimPending      sync.RWMutex
	lockMarkDelivered     sync.RWMutex
	lockMarkFailedAttempt sync.RWMutex
}

func (mock *outboxMock) Insert(ctx context.Context, entry *domain.OutboxEntry) error {
	if mock.InsertFunc == nil {
		panic("outboxMock.InsertFunc: method is nil but outboxWriter.Insert was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry *domain.OutboxEntry
	}{Ctx: ctx, Entry: entry}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, entry)
}

func (mock *outboxMock) InsertCalls() []struct {
	Ctx   context.Context
	Entry *domain.OutboxEntry
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *outboxMock) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]*domain.OutboxEntry, error) {
	if mock.ClaimPendingFunc == nil {
		panic("outboxMock.ClaimPendingFunc: method is nil but outboxQueue.ClaimPending was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
		Lease time.Duration
	}{Ctx: ctx, Limit: limit, Lease: lease}
	mock.lockClaimPending.Lock()
	mock.calls.ClaimPending = append(mock.calls.ClaimPending, callInfo)
	mock.lockClaimPending.Unlock()
	return mock.ClaimPendingFunc(ctx, limit, lease)
}

func (mock *outboxMock) ClaimPendingCalls() []struct {
	Ctx   context.Context
	Limit int
	Lease time.Duration
} {
	mock.lockClaimPending.RLock()
	calls := mock.calls.ClaimPending
	mock.lockClaimPending.RUnlock()
	return calls
}

func (mock *outboxMock) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.MarkDeliveredFunc == nil {
		panic("outboxMock.MarkDeliveredFunc: method is nil but outboxQueue.MarkDelivered was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockMarkDelivered.Lock()
	mock.calls.MarkDelivered = append(mock.calls.MarkDelivered, callInfo)
	mock.lockMarkDelivered.Unlock()
	return mock.MarkDeliveredFunc(ctx, id, at)
}

func (mock *outboxMock) MarkDeliveredCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockMarkDelivered.RLock()
	calls := mock.calls.MarkDelivered
	mock.lockMarkDelivered.RUnlock()
	return calls
}

func (mock *outboxMock) MarkFailedAttempt(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error {
	if mock.MarkFailedAttemptFunc == nil {
		panic("outboxMock.MarkFailedAttemptFunc: method is nil but outboxQueue.MarkFailedAttempt was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          uuid.UUID
		Reason      string
		MaxAttempts int
	}{Ctx: ctx, ID: id, Reason: reason, MaxAttempts: maxAttempts}
	mock.lockMarkFailedAttempt.Lock()
	mock.calls.MarkFailedAttempt = append(mock.calls.MarkFailedAttempt, callInfo)
	mock.lockMarkFailedAttempt.Unlock()
	return mock.MarkFailedAttemptFunc(ctx, id, reason, maxAttempts)
}

func (mock *outboxMock) MarkFailedAttemptCalls() []struct {
	Ctx         context.Context
	ID          uuid.UUID
	Reason      string
	MaxAttempts int
} {
	mock.lockMarkFailedAttempt.RLock()
	calls := mock.calls.MarkFailedAttempt
	mock.lockMarkFailedAttempt.RUnlock()
	return calls
}
