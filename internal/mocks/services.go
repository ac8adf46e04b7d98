package mocks

import (
	"context"
	"sync"

	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/service"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mu         sync.Mutex
	CreateFunc func(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error)
	Requests   []*models.CreateAccountRequest
}

// Verify interface compliance
var _ service.AccountService = (*MockAccountService)(nil)

func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	id := len(m.Requests)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Account{ID: id, Email: req.Email, RoleID: models.DefaultRoleID}, nil
}

func (m *MockAccountService) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests), nil
}
