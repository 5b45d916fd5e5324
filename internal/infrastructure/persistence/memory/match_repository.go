package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	byID   map[string]match.Match
	byPair map[string]string
	order  []string
	now    func() time.Time
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		byID:   make(map[string]match.Match),
		byPair: make(map[string]string),
		now:    time.Now,
	}
}

func (r *MatchRepository) CreateIfAbsent(ctx context.Context, a, b string) (match.Match, bool, error) {
	if err := ctx.Err(); err != nil {
		return match.Match{}, false, err
	}

	key := match.PairKey(a, b)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byPair[key]; ok {
		return r.byID[id], false, nil
	}

	m := match.Match{
		ID:        uuid.NewString(),
		Profiles:  [2]string{a, b},
		CreatedAt: r.now().UTC(),
	}
	r.byID[m.ID] = m
	r.byPair[key] = m.ID
	r.order = append(r.order, m.ID)
	return m, true, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, error) {
	if err := ctx.Err(); err != nil {
		return match.Match{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	return m, nil
}

func (r *MatchRepository) ListByParticipant(ctx context.Context, accountID string) ([]match.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.order {
		if m := r.byID[id]; m.Has(accountID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MatchRepository) DeleteForParticipant(ctx context.Context, id, accountID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || !m.Has(accountID) {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byPair, m.PairKey())
	out := r.order[:0]
	for _, oid := range r.order {
		if oid != id {
			out = append(out, oid)
		}
	}
	r.order = out
	return true, nil
}
