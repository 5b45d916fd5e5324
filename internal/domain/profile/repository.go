package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	// ErrInvalidID is returned when an account reference is not in the
	// format the store uses for IDs.
	ErrInvalidID = errors.New("invalid account reference")
)

type CandidateFilter struct {
	Exclude []string
	Gender  string
}

type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByAccountID(ctx context.Context, accountID string) (Profile, error)
	UpdateAttributes(ctx context.Context, accountID string, attrs Attributes) (Profile, error)
	ListCandidates(ctx context.Context, f CandidateFilter) ([]Profile, error)

	// Like adds targetID to likes and removes it from dislikes in a single
	// atomic write. ErrNotFound when accountID has no profile.
	Like(ctx context.Context, accountID, targetID string) error
	// Dislike removes targetID from likes and adds it to dislikes in a
	// single atomic write. ErrNotFound when accountID has no profile.
	Dislike(ctx context.Context, accountID, targetID string) error
	// RetractLike removes targetID from likes. A missing profile is not an
	// error.
	RetractLike(ctx context.Context, accountID, targetID string) error
}
