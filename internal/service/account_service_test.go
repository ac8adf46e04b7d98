package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/backup-toolkit/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccountService() *accountService {
	return newAccountService(bcrypt.MinCost, zerolog.Nop())
}

func TestAccountService_CreateAccount(t *testing.T) {
	svc := newTestAccountService()
	ctx := context.Background()

	account, err := svc.CreateAccount(ctx, &models.CreateAccountRequest{
		Email:    "user3@gmail.com",
		Password: "user2747",
		FullName: "Nguyễn Văn A",
		Phone:    "0912345678",
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if account.ID != 1 {
		t.Errorf("Expected id 1, got %d", account.ID)
	}
	if account.RoleID != models.DefaultRoleID {
		t.Errorf("Expected role %d, got %d", models.DefaultRoleID, account.RoleID)
	}
	if account.FullName == nil || *account.FullName != "Nguyễn Văn A" {
		t.Errorf("Unexpected full name %v", account.FullName)
	}
	if account.Address != nil {
		t.Errorf("Empty address should be stored as null, got %q", *account.Address)
	}
	if account.PasswordHash == "user2747" {
		t.Fatal("Password must not be stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("user2747")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}

	second, err := svc.CreateAccount(ctx, &models.CreateAccountRequest{Email: "user4@gmail.com", Password: "x"})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("Expected sequential id 2, got %d", second.ID)
	}
}

func TestAccountService_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateAccountRequest
	}{
		{name: "no email", req: models.CreateAccountRequest{Password: "p"}},
		{name: "no password", req: models.CreateAccountRequest{Email: "a@b.co"}},
		{name: "empty", req: models.CreateAccountRequest{}},
	}

	svc := newTestAccountService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), &tt.req)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Expected ErrMissingCredentials, got %v", err)
			}
		})
	}

	if count, _ := svc.Count(context.Background()); count != 0 {
		t.Errorf("Expected no accounts, got %d", count)
	}
}

func TestAccountService_DuplicateEmail(t *testing.T) {
	svc := newTestAccountService()
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, &models.CreateAccountRequest{Email: "user3@gmail.com", Password: "p"}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := svc.CreateAccount(ctx, &models.CreateAccountRequest{Email: "USER3@gmail.com", Password: "p"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}

	if count, _ := svc.Count(ctx); count != 1 {
		t.Errorf("Expected 1 account, got %d", count)
	}
}

func TestAccountService_ConcurrentIDsAreUnique(t *testing.T) {
	svc := newTestAccountService()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account, err := svc.CreateAccount(ctx, &models.CreateAccountRequest{
				Email:    "user" + string(rune('a'+i)) + "@gmail.com",
				Password: "p",
			})
			if err != nil {
				t.Errorf("CreateAccount failed: %v", err)
				return
			}
			ids <- account.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 20 {
		t.Errorf("Expected 20 ids, got %d", len(seen))
	}
}
