package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestCandidate_ExcludesSelfInteractedAndOtherGenders(t *testing.T) {
	f := newFixture(t)
	f.addProfile(t, "a", "Ann", "Female", "Male")
	f.addProfile(t, "b", "Bob", "Male", "Female")
	f.addProfile(t, "c", "Cal", "Male", "Female")
	f.addProfile(t, "d", "Dan", "Male", "Female")
	f.addProfile(t, "e", "Eve", "Female", "Male")
	ctx := context.Background()

	_, _ = f.interactions.Like(ctx, "a", "b")
	_, _ = f.interactions.Dislike(ctx, "a", "c")

	got, err := f.candidates.Candidates(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].AccountID != "d" {
		ids := make([]string, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.AccountID)
		}
		t.Fatalf("expected [d], got %v", ids)
	}
}

func TestCandidate_EmptyIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.addProfile(t, "a", "Ann", "Female", "Male")

	got, err := f.candidates.Candidates(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", got)
	}
}

func TestCandidate_RequesterWithoutProfile(t *testing.T) {
	f := newFixture(t)
	if _, err := f.candidates.Candidates(context.Background(), "a"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
