package usecase

import (
	"context"
	"time"

	"fate-inyeon/internal/domain/account"
	"fate-inyeon/internal/pkg/jwt"
	ucauth "fate-inyeon/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (account.Account, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (account.Account, string, error)
}

// TokenLifetimes are the validity periods of tokens issued on signup and on
// login.
type TokenLifetimes struct {
	Signup time.Duration
	Login  time.Duration
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
	ttl     TokenLifetimes
}

func NewAuthUsecase(svc *ucauth.Service, jwtSvc jwt.Service, ttl TokenLifetimes) *Auth {
	return &Auth{authSvc: svc, jwt: jwtSvc, ttl: ttl}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (account.Account, string, error) {
	acc, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return account.Account{}, "", err
	}

	token, err := u.jwt.GenerateToken(acc.ID, u.ttl.Signup)
	if err != nil {
		return account.Account{}, "", ErrInternal
	}
	return acc, token, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (account.Account, string, error) {
	acc, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return account.Account{}, "", err
	}

	token, err := u.jwt.GenerateToken(acc.ID, u.ttl.Login)
	if err != nil {
		return account.Account{}, "", ErrInternal
	}
	return acc, token, nil
}
