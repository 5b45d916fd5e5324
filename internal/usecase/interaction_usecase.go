package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"fate-inyeon/internal/domain/interaction"
	"fate-inyeon/internal/domain/match"
	"fate-inyeon/internal/domain/profile"
	"fate-inyeon/internal/metrics"
)

type LikeOutcome int

const (
	LikeOutcomeLiked LikeOutcome = iota
	LikeOutcomeAlreadyLiked
	LikeOutcomeMatched
)

func (o LikeOutcome) String() string {
	switch o {
	case LikeOutcomeLiked:
		return "liked"
	case LikeOutcomeAlreadyLiked:
		return "already_liked"
	case LikeOutcomeMatched:
		return "matched"
	default:
		return "unknown"
	}
}

type LikeResult struct {
	Outcome LikeOutcome
	// Set only when Outcome is LikeOutcomeMatched.
	Match         match.Match
	RequesterName string
	CandidateName string
}

type DislikeOutcome int

const (
	DislikeOutcomeDisliked DislikeOutcome = iota
	DislikeOutcomeAlreadyDisliked
)

func (o DislikeOutcome) String() string {
	if o == DislikeOutcomeAlreadyDisliked {
		return "already_disliked"
	}
	return "disliked"
}

type DislikeResult struct {
	Outcome DislikeOutcome
}

type InteractionUsecase interface {
	Like(ctx context.Context, accountID, candidateID string) (LikeResult, error)
	Dislike(ctx context.Context, accountID, candidateID string) (DislikeResult, error)
}

type Interaction struct {
	profiles profile.Repository
	matches  match.Repository
	locker   PairLocker
	notifier MatchNotifier
	logger   *log.Logger
}

func NewInteractionUsecase(profiles profile.Repository, matches match.Repository, locker PairLocker, notifier MatchNotifier, logger *log.Logger) *Interaction {
	if locker == nil {
		locker = noopLocker{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Interaction{profiles: profiles, matches: matches, locker: locker, notifier: notifier, logger: logger}
}

// Like records accountID's like of candidateID and creates a match when the
// candidate already liked accountID back. The like is recorded before the
// candidate is looked up; if the candidate has no profile the like is kept
// and ErrCandidateNotFound is returned.
func (u *Interaction) Like(ctx context.Context, accountID, candidateID string) (res LikeResult, err error) {
	defer func() {
		outcome := res.Outcome.String()
		if err != nil {
			outcome = "error"
		}
		metrics.ObserveInteraction("like", outcome)
	}()

	candidateID = strings.TrimSpace(candidateID)
	if accountID == "" {
		return LikeResult{}, ErrUnauthorized
	}
	if candidateID == "" || candidateID == accountID {
		return LikeResult{}, ErrInvalidTarget
	}

	release, err := u.locker.Acquire(ctx, pairLockKey(accountID, candidateID))
	defer release()
	if err != nil {
		return LikeResult{}, ErrConcurrentUpdate
	}

	me, err := u.loadRequester(ctx, accountID)
	if err != nil {
		return LikeResult{}, err
	}

	tr, err := interaction.Apply(me.RelationTo(candidateID), interaction.ActionLike)
	if err != nil {
		return LikeResult{}, ErrInternal
	}
	if tr.NoOp {
		return LikeResult{Outcome: LikeOutcomeAlreadyLiked}, nil
	}

	if err := u.profiles.Like(ctx, accountID, candidateID); err != nil {
		return LikeResult{}, mapProfileWriteError(err)
	}

	candidate, err := u.profiles.GetByAccountID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) || errors.Is(err, profile.ErrInvalidID) {
			u.logf("[Interactions] like kept without candidate profile account=%s candidate=%s", accountID, candidateID)
			return LikeResult{}, ErrCandidateNotFound
		}
		return LikeResult{}, ErrInternal
	}

	if !interaction.Mutual(tr.To, candidate.RelationTo(accountID)) {
		return LikeResult{Outcome: LikeOutcomeLiked}, nil
	}

	m, created, err := u.matches.CreateIfAbsent(ctx, accountID, candidateID)
	if err != nil {
		return LikeResult{}, ErrInternal
	}
	if created {
		metrics.MatchCreated()
		u.notifier.MatchCreated(m)
		u.logf("[Interactions] match created match_id=%s profiles=%s,%s", m.ID, m.Profiles[0], m.Profiles[1])
	}

	return LikeResult{
		Outcome:       LikeOutcomeMatched,
		Match:         m,
		RequesterName: me.Name,
		CandidateName: candidate.Name,
	}, nil
}

// Dislike records accountID's dislike of candidateID, withdrawing a like in
// the same write. Existing matches are left alone.
func (u *Interaction) Dislike(ctx context.Context, accountID, candidateID string) (res DislikeResult, err error) {
	defer func() {
		outcome := res.Outcome.String()
		if err != nil {
			outcome = "error"
		}
		metrics.ObserveInteraction("dislike", outcome)
	}()

	candidateID = strings.TrimSpace(candidateID)
	if accountID == "" {
		return DislikeResult{}, ErrUnauthorized
	}
	if candidateID == "" || candidateID == accountID {
		return DislikeResult{}, ErrInvalidTarget
	}

	me, err := u.loadRequester(ctx, accountID)
	if err != nil {
		return DislikeResult{}, err
	}

	tr, err := interaction.Apply(me.RelationTo(candidateID), interaction.ActionDislike)
	if err != nil {
		return DislikeResult{}, ErrInternal
	}
	if tr.NoOp {
		return DislikeResult{Outcome: DislikeOutcomeAlreadyDisliked}, nil
	}

	if err := u.profiles.Dislike(ctx, accountID, candidateID); err != nil {
		return DislikeResult{}, mapProfileWriteError(err)
	}
	return DislikeResult{Outcome: DislikeOutcomeDisliked}, nil
}

func (u *Interaction) loadRequester(ctx context.Context, accountID string) (profile.Profile, error) {
	p, err := u.profiles.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) || errors.Is(err, profile.ErrInvalidID) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Interaction) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func mapProfileWriteError(err error) error {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, profile.ErrInvalidID):
		return ErrCandidateNotFound
	default:
		return ErrInternal
	}
}
