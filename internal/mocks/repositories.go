package mocks

import (
	"context"
	"sync"

	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/repository"
)

// MockRepository is an in-memory implementation of RecordRepository
type MockRepository[T any] struct {
	mu               sync.Mutex
	Records          []*T
	InsertError      error
	StreamError      error
	DeleteError      error
	BatchInsertFunc  func(ctx context.Context, records []*T) (int, error)
	BatchInsertCalls int
	DeleteAllCalls   int
}

// Verify interface compliance
var (
	_ repository.NewsRepository       = (*MockRepository[models.News])(nil)
	_ repository.ProductRepository    = (*MockRepository[models.Product])(nil)
	_ repository.PermissionRepository = (*MockRepository[models.Permission])(nil)
)

func NewMockRepository[T any]() *MockRepository[T] {
	return &MockRepository[T]{}
}

// NewMockRepositories returns repositories backed by fresh mocks
func NewMockRepositories() (*repository.Repositories, *MockRepository[models.News], *MockRepository[models.Product], *MockRepository[models.Permission]) {
	news := NewMockRepository[models.News]()
	products := NewMockRepository[models.Product]()
	permissions := NewMockRepository[models.Permission]()
	return &repository.Repositories{
		News:       news,
		Product:    products,
		Permission: permissions,
	}, news, products, permissions
}

func (m *MockRepository[T]) BatchInsert(ctx context.Context, records []*T) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, records)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.Records = append(m.Records, records...)
	return len(records), nil
}

func (m *MockRepository[T]) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records), nil
}

func (m *MockRepository[T]) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteAllCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Records = nil
	return nil
}

func (m *MockRepository[T]) StreamAll(ctx context.Context, callback func(*T) error) error {
	m.mu.Lock()
	records := append([]*T(nil), m.Records...)
	m.mu.Unlock()

	if m.StreamError != nil {
		return m.StreamError
	}
	for _, r := range records {
		if err := callback(r); err != nil {
			return err
		}
	}
	return nil
}
