package usecase

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrNotParticipant    = errors.New("not part of this match")
	ErrInvalidTarget     = errors.New("invalid interaction target")
	// ErrConcurrentUpdate is returned when the pair lock could not be taken
	// before the request context gave up.
	ErrConcurrentUpdate = errors.New("concurrent update in progress")
	ErrInternal         = errors.New("internal error")
)
