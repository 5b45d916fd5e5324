package usecase

import (
	"context"
	"errors"

	"fate-inyeon/internal/domain/profile"
)

type CandidateUsecase interface {
	Candidates(ctx context.Context, accountID string) ([]profile.Profile, error)
}

type Candidate struct {
	profiles profile.Repository
}

func NewCandidateUsecase(profiles profile.Repository) *Candidate {
	return &Candidate{profiles: profiles}
}

// Candidates lists every profile of the requester's preferred gender that it
// has neither liked nor disliked. The preferred age range is not applied.
func (u *Candidate) Candidates(ctx context.Context, accountID string) ([]profile.Profile, error) {
	if accountID == "" {
		return nil, ErrUnauthorized
	}

	me, err := u.profiles.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) || errors.Is(err, profile.ErrInvalidID) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	out, err := u.profiles.ListCandidates(ctx, profile.CandidateFilter{
		Exclude: me.ExcludedFromCandidates(),
		Gender:  me.Preferences.Gender,
	})
	if err != nil {
		return nil, ErrInternal
	}
	if out == nil {
		out = []profile.Profile{}
	}
	return out, nil
}
