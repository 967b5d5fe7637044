package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var (
	_ moderatorLister = &moderatorListerMock{}
	_ adminLister     = &adminListerMock{}
)

type moderatorListerMock struct {
	ListModeratorsFunc func(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		ListModerators []struct {
			Ctx          context.Context
			CollectionID uuid.UUID
		}
	}
	lockListModerators sync.RWMutex
}

func (mock *moderatorListerMock) ListModerators(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListModeratorsFunc == nil {
		panic("moderatorListerMock.ListModeratorsFunc: method is nil but moderatorLister.ListModerators was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CollectionID uuid.UUID
	}{Ctx: ctx, CollectionID: collectionID}
	mock.lockListModerators.Lock()
	mock.calls.ListModerators = append(mock.calls.ListModerators, callInfo)
	mock.lockListModerators.Unlock()
	return mock.ListModeratorsFunc(ctx, collectionID)
}

func (mock *moderatorListerMock) ListModeratorsCalls() []struct {
	Ctx          context.Context
	CollectionID uuid.UUID
} {
	mock.lockListModerators.RLock()
	calls := mock.calls.ListModerators
	mock.lockListModerators.RUnlock()
	return calls
}

type adminListerMock struct {
	ListAdminsFunc func(ctx context.Context, artifactGUID string) ([]uuid.UUID, error)

	calls struct {
		ListAdmins []struct {
			Ctx          context.Context
			ArtifactGUID string
		}
	}
	lockListAdmins sync.RWMutex
}

func (mock *adminListerMock) ListAdmins(ctx context.Context, artifactGUID string) ([]uuid.UUID, error) {
	if mock.ListAdminsFunc == nil {
		panic("adminListerMock.ListAdminsFunc: method is nil but adminLister.ListAdmins was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		ArtifactGUID string
	}{Ctx: ctx, ArtifactGUID: artifactGUID}
	mock.lockListAdmins.Lock()
	mock.calls.ListAdmins = append(mock.calls.ListAdmins, callInfo)
	mock.lockListAdmins.Unlock()
	return mock.ListAdminsFunc(ctx, artifactGUID)
}

func (mock *adminListerMock) ListAdminsCalls() []struct {
	Ctx          context.Context
	ArtifactGUID string
} {
	mock.lockListAdmins.RLock()
	calls := mock.calls.ListAdmins
	mock.lockListAdmins.RUnlock()
	return calls
}
