package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
)

// mockEventRepository は event.Repository のモック
type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Create(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	args := m.Called(ctx, tx, e)
	return args.Error(0)
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*event.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) List(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	args := m.Called(ctx, limit, offset)
	if e := args.Get(0); e != nil {
		return e.([]*event.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) Save(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	args := m.Called(ctx, tx, e)
	return args.Error(0)
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventRepository) DeclineStaleRequests(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

func (m *mockEventRepository) CountPendingRequests(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ event.Repository = (*mockEventRepository)(nil)

// fakeTx はテスト用のトランザクション
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

// fakeTxManager はテスト用のトランザクションマネージャー
type fakeTxManager struct {
	lastTx *fakeTx
}

func (m *fakeTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	m.lastTx = &fakeTx{}
	return m.lastTx, nil
}

var _ transaction.Manager = (*fakeTxManager)(nil)
