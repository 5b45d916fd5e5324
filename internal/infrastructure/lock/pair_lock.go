// Package lock serializes like and unmatch work on one unordered pair of
// accounts, across instances through Redis and within the process otherwise.
package lock

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/metrics"
)

const (
	defaultTTL  = 5 * time.Second
	pollMin     = 10 * time.Millisecond
	pollMax     = 200 * time.Millisecond
	releaseWait = 2 * time.Second
)

// PairLocker takes a Redis SET NX lock per key. While Redis is unavailable it
// degrades to the in-process Local lock; the match store's conditional insert
// still keeps at most one match per pair across instances.
type PairLocker struct {
	redis    *Redis
	local    *Local
	ttl      time.Duration
	logger   *log.Logger
	newToken func() string
}

func NewPairLocker(r *Redis, ttl time.Duration, logger *log.Logger) *PairLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PairLocker{
		redis:    r,
		local:    NewLocal(),
		ttl:      ttl,
		logger:   logger,
		newToken: uuid.NewString,
	}
}

func (p *PairLocker) Acquire(ctx context.Context, key string) (func(), error) {
	start := time.Now()
	defer func() { metrics.ObservePairLockWait(time.Since(start)) }()

	if !p.redis.Available() {
		return p.local.Acquire(ctx, key)
	}

	token := p.newToken()
	wait := pollMin
	for {
		ok, err := p.redis.SetIfNotExists(ctx, key, token, p.ttl)
		if err != nil {
			if ctx.Err() != nil {
				return func() {}, ctx.Err()
			}
			return p.local.Acquire(ctx, key)
		}
		if ok {
			return p.releaser(key, token), nil
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return func() {}, ctx.Err()
		case <-t.C:
		}
		if wait *= 2; wait > pollMax {
			wait = pollMax
		}
	}
}

func (p *PairLocker) releaser(key, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseWait)
		defer cancel()
		if _, err := p.redis.DeleteIfValue(ctx, key, token); err != nil && p.logger != nil {
			p.logger.Printf("[Lock] release failed key=%s err=%v", key, err)
		}
	}
}
