package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/backup-toolkit/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when email or password is empty
	ErrMissingCredentials = errors.New("missing email or password")
	// ErrEmailTaken is returned when an account with the email already exists
	ErrEmailTaken = errors.New("email already registered")
)

// accountService keeps accounts in memory. Ids start at 1 and are never reused.
type accountService struct {
	mu       sync.Mutex
	cost     int
	nextID   int
	byEmail  map[string]*models.Account
	accounts []*models.Account
	log      zerolog.Logger
}

// NewAccountService creates an in-memory AccountService
func NewAccountService(log zerolog.Logger) AccountService {
	return newAccountService(bcrypt.DefaultCost, log)
}

func newAccountService(cost int, log zerolog.Logger) *accountService {
	return &accountService{
		cost:    cost,
		nextID:  1,
		byEmail: make(map[string]*models.Account),
		log:     log.With().Str("service", "account").Logger(),
	}
}

// CreateAccount hashes the password and stores a new account with the default role
func (s *accountService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	key := strings.ToLower(req.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}

	account := &models.Account{
		ID:           s.nextID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     optional(req.FullName),
		Phone:        optional(req.Phone),
		Address:      optional(req.Address),
		RoleID:       models.DefaultRoleID,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++
	s.byEmail[key] = account
	s.accounts = append(s.accounts, account)

	s.log.Info().Int("account_id", account.ID).Str("email", account.Email).Msg("Account created")

	return account, nil
}

// Count returns the number of stored accounts
func (s *accountService) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
