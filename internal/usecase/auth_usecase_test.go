package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fate-inyeon/internal/infrastructure/persistence/memory"
	"fate-inyeon/internal/pkg/jwt"
	ucauth "fate-inyeon/internal/usecase/auth"
)

type recordingJWT struct {
	issued []time.Duration
	err    error
}

func (j *recordingJWT) GenerateToken(accountID string, expiresIn time.Duration) (string, error) {
	if j.err != nil {
		return "", j.err
	}
	j.issued = append(j.issued, expiresIn)
	return "token-" + accountID, nil
}

func (j *recordingJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

func TestAuth_TokenLifetimes(t *testing.T) {
	svc := ucauth.NewService(memory.NewAccountRepository()).WithCost(bcrypt.MinCost)
	j := &recordingJWT{}
	uc := NewAuthUsecase(svc, j, TokenLifetimes{Signup: time.Hour, Login: 12 * time.Hour})
	ctx := context.Background()

	acc, tok, err := uc.Register(ctx, ucauth.RegisterInput{Email: "a@x.io", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tok != "token-"+acc.ID {
		t.Fatalf("unexpected token %q", tok)
	}

	if _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "A@X.io ", Password: "password1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(j.issued) != 2 || j.issued[0] != time.Hour || j.issued[1] != 12*time.Hour {
		t.Fatalf("unexpected lifetimes %v", j.issued)
	}
}

func TestAuth_TokenFailureIsInternal(t *testing.T) {
	svc := ucauth.NewService(memory.NewAccountRepository()).WithCost(bcrypt.MinCost)
	uc := NewAuthUsecase(svc, &recordingJWT{err: jwt.ErrTokenInvalid}, TokenLifetimes{Signup: time.Hour, Login: time.Hour})

	_, _, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "a@x.io", Password: "password1"})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
