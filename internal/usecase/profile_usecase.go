package usecase

import (
	"context"

	"fate-inyeon/internal/domain/profile"
	ucprofile "fate-inyeon/internal/usecase/profile"
)

type ProfileUsecase interface {
	CreateProfile(ctx context.Context, accountID string, in ucprofile.CreateInput) (profile.Profile, error)
	GetProfile(ctx context.Context, accountID string) (profile.Profile, error)
	UpdateProfile(ctx context.Context, accountID string, in ucprofile.UpdateInput) (profile.Profile, error)
}

type Profile struct {
	svc *ucprofile.Service
}

func NewProfileUsecase(profiles profile.Repository) *Profile {
	return &Profile{svc: ucprofile.NewService(profiles)}
}

func (u *Profile) CreateProfile(ctx context.Context, accountID string, in ucprofile.CreateInput) (profile.Profile, error) {
	if accountID == "" {
		return profile.Profile{}, ErrUnauthorized
	}
	return u.svc.Create(ctx, accountID, in)
}

func (u *Profile) GetProfile(ctx context.Context, accountID string) (profile.Profile, error) {
	if accountID == "" {
		return profile.Profile{}, ErrUnauthorized
	}
	return u.svc.Get(ctx, accountID)
}

func (u *Profile) UpdateProfile(ctx context.Context, accountID string, in ucprofile.UpdateInput) (profile.Profile, error) {
	if accountID == "" {
		return profile.Profile{}, ErrUnauthorized
	}
	return u.svc.Update(ctx, accountID, in)
}
