package cases

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/domain"
)

var _ caseRepo = &caseRepoMock{}

type caseRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	CreateFunc     func(ctx context.Context, c *domain.Case) (*domain.Case, error)
	UpdateFunc     func(ctx context.Context, c *domain.Case) (*domain.Case, error)
	ListActiveFunc func(ctx context.Context) ([]domain.Case, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		Create []struct {
			Case *domain.Case
		}
		Update []struct {
			Case *domain.Case
		}
		ListActive []struct{}
	}
	lock sync.RWMutex
}

func (mock *caseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if mock.GetByIDFunc == nil {
		panic("caseRepoMock.GetByIDFunc: method is nil but caseRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		ID uuid.UUID
	}{id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *caseRepoMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *caseRepoMock) Create(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	if mock.CreateFunc == nil {
		panic("caseRepoMock.CreateFunc: method is nil but caseRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Case *domain.Case
	}{c})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *caseRepoMock) CreateCalls() []struct {
	Case *domain.Case
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *caseRepoMock) Update(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	if mock.UpdateFunc == nil {
		panic("caseRepoMock.UpdateFunc: method is nil but caseRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		Case *domain.Case
	}{c})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, c)
}

func (mock *caseRepoMock) UpdateCalls() []struct {
	Case *domain.Case
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *caseRepoMock) ListActive(ctx context.Context) ([]domain.Case, error) {
	if mock.ListActiveFunc == nil {
		panic("caseRepoMock.ListActiveFunc: method is nil but caseRepo.ListActive was just called")
	}
	mock.lock.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, struct{}{})
	mock.lock.Unlock()
	return mock.ListActiveFunc(ctx)
}

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	AppendFunc     func(ctx context.Context, e domain.HistoryEntry) error
	ListByCaseFunc func(ctx context.Context, caseID uuid.UUID, limit int) ([]domain.HistoryEntry, error)

	calls struct {
		Append []struct {
			Entry domain.HistoryEntry
		}
		ListByCase []struct {
			CaseID uuid.UUID
			Limit  int
		}
	}
	lock sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, e domain.HistoryEntry) error {
	if mock.AppendFunc == nil {
		// Appending is incidental to most tests; default to success.
		mock.lock.Lock()
		mock.calls.Append = append(mock.calls.Append, struct {
			Entry domain.HistoryEntry
		}{e})
		mock.lock.Unlock()
		return nil
	}
	mock.lock.Lock()
	mock.calls.Append = append(mock.calls.Append, struct {
		Entry domain.HistoryEntry
	}{e})
	mock.lock.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *historyRepoMock) AppendCalls() []struct {
	Entry domain.HistoryEntry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Append
}

func (mock *historyRepoMock) ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]domain.HistoryEntry, error) {
	if mock.ListByCaseFunc == nil {
		panic("historyRepoMock.ListByCaseFunc: method is nil but historyRepo.ListByCase was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByCase = append(mock.calls.ListByCase, struct {
		CaseID uuid.UUID
		Limit  int
	}{caseID, limit})
	mock.lock.Unlock()
	return mock.ListByCaseFunc(ctx, caseID, limit)
}

// Ensure, that txManagerMock does implement txManager.
var _ txManager = &txManagerMock{}

// txManagerMock is a mock implementation of txManager. When RunInTxFunc
// is nil the callback runs directly, which is what most tests want.
type txManagerMock struct {
	// RunInTxFunc mocks the RunInTx method.
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}
