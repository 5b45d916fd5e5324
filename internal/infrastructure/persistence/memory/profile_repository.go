package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/domain/profile"
)

type ProfileRepository struct {
	mu        sync.RWMutex
	byAccount map[string]*profile.Profile
	order     []string
	now       func() time.Time
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byAccount: make(map[string]*profile.Profile),
		now:       time.Now,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	if p.AccountID == "" {
		return profile.Profile{}, profile.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAccount[p.AccountID]; ok {
		return profile.Profile{}, profile.ErrAlreadyExists
	}

	p.ID = uuid.NewString()
	p.Likes = p.Likes.Clone()
	p.Dislikes = p.Dislikes.Clone()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	stored := p
	r.byAccount[p.AccountID] = &stored
	r.order = append(r.order, p.AccountID)
	return snapshot(&stored), nil
}

func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID string) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byAccount[accountID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return snapshot(p), nil
}

func (r *ProfileRepository) UpdateAttributes(ctx context.Context, accountID string, attrs profile.Attributes) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byAccount[accountID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	p.Attributes = attrs
	p.UpdatedAt = r.now().UTC()
	return snapshot(p), nil
}

// ListCandidates returns profiles in insertion order.
func (r *ProfileRepository) ListCandidates(ctx context.Context, f profile.CandidateFilter) ([]profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exclude := profile.NewIDSet(f.Exclude...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0)
	for _, id := range r.order {
		p := r.byAccount[id]
		if exclude.Has(p.AccountID) || p.Gender != f.Gender {
			continue
		}
		out = append(out, snapshot(p))
	}
	return out, nil
}

func (r *ProfileRepository) Like(ctx context.Context, accountID, targetID string) error {
	return r.mutate(ctx, accountID, true, func(p *profile.Profile) {
		p.Likes.Add(targetID)
		p.Dislikes.Remove(targetID)
	})
}

func (r *ProfileRepository) Dislike(ctx context.Context, accountID, targetID string) error {
	return r.mutate(ctx, accountID, true, func(p *profile.Profile) {
		p.Likes.Remove(targetID)
		p.Dislikes.Add(targetID)
	})
}

func (r *ProfileRepository) RetractLike(ctx context.Context, accountID, targetID string) error {
	return r.mutate(ctx, accountID, false, func(p *profile.Profile) {
		p.Likes.Remove(targetID)
	})
}

func (r *ProfileRepository) mutate(ctx context.Context, accountID string, mustExist bool, fn func(p *profile.Profile)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byAccount[accountID]
	if !ok {
		if mustExist {
			return profile.ErrNotFound
		}
		return nil
	}
	if p.Likes == nil {
		p.Likes = profile.NewIDSet()
	}
	if p.Dislikes == nil {
		p.Dislikes = profile.NewIDSet()
	}
	fn(p)
	p.UpdatedAt = r.now().UTC()
	return nil
}

// Delete removes a profile. Not part of profile.Repository; tests use it to
// simulate a candidate that vanished mid-request.
func (r *ProfileRepository) Delete(accountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byAccount, accountID)
	out := r.order[:0]
	for _, id := range r.order {
		if id != accountID {
			out = append(out, id)
		}
	}
	r.order = out
}

func snapshot(p *profile.Profile) profile.Profile {
	cp := *p
	cp.Likes = p.Likes.Clone()
	cp.Dislikes = p.Dislikes.Clone()
	return cp
}
