package match

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("match not found")

type Repository interface {
	// CreateIfAbsent inserts a match for the unordered pair {a, b} unless one
	// already exists. created is false when the existing match is returned.
	CreateIfAbsent(ctx context.Context, a, b string) (m Match, created bool, err error)
	GetByID(ctx context.Context, id string) (Match, error)
	ListByParticipant(ctx context.Context, accountID string) ([]Match, error)
	// DeleteForParticipant deletes the match only while accountID is one of
	// its participants. deleted is false when nothing matched.
	DeleteForParticipant(ctx context.Context, id, accountID string) (deleted bool, err error)
}
