package usecase

import (
	"context"

	"fate-inyeon/internal/domain/match"
)

// PairLocker serializes work on one unordered pair of accounts. release is
// always safe to call, including after a failed Acquire.
type PairLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MatchNotifier is told about match lifecycle events. Delivery is best effort.
type MatchNotifier interface {
	MatchCreated(m match.Match)
	MatchRemoved(m match.Match)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

type noopNotifier struct{}

func (noopNotifier) MatchCreated(match.Match) {}
func (noopNotifier) MatchRemoved(match.Match) {}

func pairLockKey(a, b string) string {
	return "pairlock:" + match.PairKey(a, b)
}
