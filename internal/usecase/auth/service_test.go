package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"fate-inyeon/internal/domain/account"
	"fate-inyeon/internal/infrastructure/persistence/memory"
)

func newService() *Service {
	return NewService(memory.NewAccountRepository()).WithCost(bcrypt.MinCost)
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	s := newService()
	acc, err := s.Register(context.Background(), RegisterInput{Email: "  Ann@Example.COM ", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if acc.Email != "ann@example.com" {
		t.Fatalf("unexpected email %q", acc.Email)
	}
	if acc.PasswordHash != "" {
		t.Fatalf("password hash must not leave the service")
	}

	stored, err := s.accounts.GetByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s := newService()
	ctx := context.Background()
	if _, err := s.Register(ctx, RegisterInput{Email: "a@x.io", Password: "password1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Register(ctx, RegisterInput{Email: "A@x.io", Password: "password2"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	s := newService()
	for _, in := range []RegisterInput{
		{Email: "", Password: "password1"},
		{Email: "a@x.io", Password: "short"},
		{Email: "a@x.io", Password: "        "},
	} {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	s := newService()
	ctx := context.Background()
	created, err := s.Register(ctx, RegisterInput{Email: "a@x.io", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := s.Login(ctx, LoginInput{Email: "a@x.io", Password: "password1"})
	if err != nil || got.ID != created.ID {
		t.Fatalf("unexpected login result %+v err=%v", got, err)
	}

	for _, in := range []LoginInput{
		{Email: "a@x.io", Password: "wrong-password"},
		{Email: "b@x.io", Password: "password1"},
		{Email: "a@x.io", Password: ""},
	} {
		if _, err := s.Login(ctx, in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%+v: expected ErrInvalidCredentials, got %v", in, err)
		}
	}
}

type brokenAccounts struct{ account.Repository }

func (brokenAccounts) GetByEmail(context.Context, string) (account.Account, error) {
	return account.Account{}, errors.New("db down")
}

func TestStoreFailureIsInternal(t *testing.T) {
	s := NewService(brokenAccounts{}).WithCost(bcrypt.MinCost)
	if _, err := s.Register(context.Background(), RegisterInput{Email: "a@x.io", Password: "password1"}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if _, err := s.Login(context.Background(), LoginInput{Email: "a@x.io", Password: "password1"}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
