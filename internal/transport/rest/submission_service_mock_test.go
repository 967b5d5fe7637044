package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/internal/service/submission"
)

var _ submissionService = &submissionServiceMock{}

type submissionServiceMock struct {
	CreateSubmissionFunc          func(ctx context.Context, input submission.CreateSubmissionInput) (*domain.Submission, error)
	ExecuteFunc                   func(ctx context.Context, input submission.ExecuteInput) (*domain.Submission, error)
	GetSubmissionFunc             func(ctx context.Context, submissionID uuid.UUID) (*submission.SubmissionView, error)
	ListSubmissionsFunc           func(ctx context.Context, input submission.ListSubmissionsInput) (*submission.ListResult, error)
	ListActionsFunc               func(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error)
	DeleteSubmissionFunc          func(ctx context.Context, submissionID uuid.UUID) error
	DeleteArtifactSubmissionsFunc func(ctx context.Context, input submission.DeleteArtifactInput) (int, error)

	calls struct {
		CreateSubmission []struct {
			Ctx   context.Context
			Input submission.CreateSubmissionInput
		}
		Execute []struct {
			Ctx   context.Context
			Input submission.ExecuteInput
		}
		GetSubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
		ListSubmissions []struct {
			Ctx   context.Context
			Input submission.ListSubmissionsInput
		}
		ListActions []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
		DeleteSubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
		DeleteArtifactSubmissions []struct {
			Ctx   context.Context
			Input submission.DeleteArtifactInput
		}
	}
	lockCreateSubmission          sync.RWMutex
	lockExecute                   sync.RWMutex
	lockGetSubmission             sync.RWMutex
	lockListSubmissions           sync.RWMutex
	lockListActions               sync.RWMutex
	lockDeleteSubmission          sync.RWMutex
	lockDeleteArtifactSubmissions sync.RWMutex
}

func (mock *submissionServiceMock) CreateSubmission(ctx context.Context, input submission.CreateSubmissionInput) (*domain.Submission, error) {
	if mock.CreateSubmissionFunc == nil {
		panic("submissionServiceMock.CreateSubmissionFunc: method is nil but submissionService.CreateSubmission was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.CreateSubmissionInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateSubmission.Lock()
	mock.calls.CreateSubmission = append(mock.calls.CreateSubmission, callInfo)
	mock.lockCreateSubmission.Unlock()
	return mock.CreateSubmissionFunc(ctx, input)
}

func (mock *submissionServiceMock) CreateSubmissionCalls() []struct {
	Ctx   context.Context
	Input submission.CreateSubmissionInput
} {
	mock.lockCreateSubmission.RLock()
	calls := mock.calls.CreateSubmission
	mock.lockCreateSubmission.RUnlock()
	return calls
}

func (mock *submissionServiceMock) Execute(ctx context.Context, input submission.ExecuteInput) (*domain.Submission, error) {
	if mock.ExecuteFunc == nil {
		panic("submissionServiceMock.ExecuteFunc: method is nil but submissionService.Execute was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.ExecuteInput
	}{Ctx: ctx, Input: input}
	mock.lockExecute.Lock()
	mock.calls.Execute = append(mock.calls.Execute, callInfo)
	mock.lockExecute.Unlock()
	return mock.ExecuteFunc(ctx, input)
}

func (mock *submissionServiceMock) ExecuteCalls() []struct {
	Ctx   context.Context
	Input submission.ExecuteInput
} {
	mock.lockExecute.RLock()
	calls := mock.calls.Execute
	mock.lockExecute.RUnlock()
	return calls
}

func (mock *submissionServiceMock) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*submission.SubmissionView, error) {
	if mock.GetSubmissionFunc == nil {
		panic("submissionServiceMock.GetSubmissionFunc: method is nil but submissionService.GetSubmission was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
	}{Ctx: ctx, SubmissionID: submissionID}
	mock.lockGetSubmission.Lock()
	mock.calls.GetSubmission = append(mock.calls.GetSubmission, callInfo)
	mock.lockGetSubmission.Unlock()
	return mock.GetSubmissionFunc(ctx, submissionID)
}

func (mock *submissionServiceMock) GetSubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.lockGetSubmission.RLock()
	calls := mock.calls.GetSubmission
	mock.lockGetSubmission.RUnlock()
	return calls
}

func (mock *submissionServiceMock) ListSubmissions(ctx context.Context, input submission.ListSubmissionsInput) (*submission.ListResult, error) {
	if mock.ListSubmissionsFunc == nil {
		panic("submissionServiceMock.ListSubmissionsFunc: method is nil but submissionService.ListSubmissions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.ListSubmissionsInput
	}{Ctx: ctx, Input: input}
	mock.lockListSubmissions.Lock()
	mock.calls.ListSubmissions = append(mock.calls.ListSubmissions, callInfo)
	mock.lockListSubmissions.Unlock()
	return mock.ListSubmissionsFunc(ctx, input)
}

func (mock *submissionServiceMock) ListSubmissionsCalls() []struct {
	Ctx   context.Context
	Input submission.ListSubmissionsInput
} {
	mock.lockListSubmissions.RLock()
	calls := mock.calls.ListSubmissions
	mock.lockListSubmissions.RUnlock()
	return calls
}

func (mock *submissionServiceMock) ListActions(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error) {
	if mock.ListActionsFunc == nil {
		panic("submissionServiceMock.ListActionsFunc: method is nil but submissionService.ListActions was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
	}{Ctx: ctx, SubmissionID: submissionID}
	mock.lockListActions.Lock()
	mock.calls.ListActions = append(mock.calls.ListActions, callInfo)
	mock.lockListActions.Unlock()
	return mock.ListActionsFunc(ctx, submissionID)
}

func (mock *submissionServiceMock) ListActionsCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.lockListActions.RLock()
	calls := mock.calls.ListActions
	mock.lockListActions.RUnlock()
	return calls
}

func (mock *submissionServiceMock) DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error {
	if mock.DeleteSubmissionFunc == nil {
		panic("submissionServiceMock.DeleteSubmissionFunc: method is nil but submissionService.DeleteSubmission was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
	}{Ctx: ctx, SubmissionID: submissionID}
	mock.lockDeleteSubmission.Lock()
	mock.calls.DeleteSubmission = append(mock.calls.DeleteSubmission, callInfo)
	mock.lockDeleteSubmission.Unlock()
	return mock.DeleteSubmissionFunc(ctx, submissionID)
}

func (mock *submissionServiceMock) DeleteSubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.lockDeleteSubmission.RLock()
	calls := mock.calls.DeleteSubmission
	mock.lockDeleteSubmission.RUnlock()
	return calls
}

func (mock *submissionServiceMock) DeleteArtifactSubmissions(ctx context.Context, input submission.DeleteArtifactInput) (int, error) {
	if mock.DeleteArtifactSubmissionsFunc == nil {
		panic("submissionServiceMock.DeleteArtifactSubmissionsFunc: method is nil but submissionService.DeleteArtifactSubmissions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.DeleteArtifactInput
	}{Ctx: ctx, Input: input}
	mock.lockDeleteArtifactSubmissions.Lock()
	mock.calls.DeleteArtifactSubmissions = append(mock.calls.DeleteArtifactSubmissions, callInfo)
	mock.lockDeleteArtifactSubmissions.Unlock()
	return mock.DeleteArtifactSubmissionsFunc(ctx, input)
}

func (mock *submissionServiceMock) DeleteArtifactSubmissionsCalls() []struct {
	Ctx   context.Context
	Input submission.DeleteArtifactInput
} {
	mock.lockDeleteArtifactSubmissions.RLock()
	calls := mock.calls.DeleteArtifactSubmissions
	mock.lockDeleteArtifactSubmissions.RUnlock()
	return calls
}
