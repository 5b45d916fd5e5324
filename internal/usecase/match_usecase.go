package usecase

import (
	"context"
	"errors"
	"log"

	"fate-inyeon/internal/domain/match"
	"fate-inyeon/internal/domain/profile"
	"fate-inyeon/internal/metrics"
)

type MatchUsecase interface {
	List(ctx context.Context, accountID string) ([]match.Match, error)
	Unmatch(ctx context.Context, accountID, matchID string) error
}

type Match struct {
	profiles profile.Repository
	matches  match.Repository
	locker   PairLocker
	notifier MatchNotifier
	logger   *log.Logger
}

func NewMatchUsecase(profiles profile.Repository, matches match.Repository, locker PairLocker, notifier MatchNotifier, logger *log.Logger) *Match {
	if locker == nil {
		locker = noopLocker{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Match{profiles: profiles, matches: matches, locker: locker, notifier: notifier, logger: logger}
}

func (u *Match) List(ctx context.Context, accountID string) ([]match.Match, error) {
	if accountID == "" {
		return nil, ErrUnauthorized
	}
	out, err := u.matches.ListByParticipant(ctx, accountID)
	if err != nil {
		return nil, ErrInternal
	}
	if out == nil {
		out = []match.Match{}
	}
	return out, nil
}

// Unmatch dissolves a match the requester takes part in. Both participants'
// likes toward each other are retracted so that a new match needs two fresh
// likes.
func (u *Match) Unmatch(ctx context.Context, accountID, matchID string) error {
	if accountID == "" {
		return ErrUnauthorized
	}

	m, err := u.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return ErrMatchNotFound
		}
		return ErrInternal
	}
	other, ok := m.Other(accountID)
	if !ok {
		return ErrNotParticipant
	}

	release, err := u.locker.Acquire(ctx, pairLockKey(accountID, other))
	defer release()
	if err != nil {
		return ErrConcurrentUpdate
	}

	// The match may have been dissolved, and the pair matched again, while
	// waiting for the lock.
	if _, err := u.matches.GetByID(ctx, m.ID); err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return ErrMatchNotFound
		}
		return ErrInternal
	}

	if err := u.profiles.RetractLike(ctx, accountID, other); err != nil && !isMissingProfile(err) {
		return ErrInternal
	}
	if err := u.profiles.RetractLike(ctx, other, accountID); err != nil && !isMissingProfile(err) {
		return ErrInternal
	}

	deleted, err := u.matches.DeleteForParticipant(ctx, m.ID, accountID)
	if err != nil {
		return ErrInternal
	}
	if !deleted {
		return ErrMatchNotFound
	}

	metrics.MatchRemoved()
	u.notifier.MatchRemoved(m)
	if u.logger != nil {
		u.logger.Printf("[Matches] unmatched match_id=%s by=%s", m.ID, accountID)
	}
	return nil
}

func isMissingProfile(err error) bool {
	return errors.Is(err, profile.ErrNotFound) || errors.Is(err, profile.ErrInvalidID)
}
