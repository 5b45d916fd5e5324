package profile

import (
	"encoding/json"
	"testing"
	"time"

	"fate-inyeon/internal/domain/interaction"
)

func TestIDSet_NoDuplicates(t *testing.T) {
	s := NewIDSet("b", "a", "a", "")
	if s.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", s.Len())
	}
	if s.Add("a") {
		t.Fatalf("adding an existing id must report false")
	}
	if !s.Remove("a") || s.Remove("a") {
		t.Fatalf("remove must succeed exactly once")
	}
}

func TestIDSet_JSON(t *testing.T) {
	b, err := json.Marshal(NewIDSet("c", "a", "b"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(b) != `["a","b","c"]` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var s IDSet
	if err := json.Unmarshal([]byte(`["x","x","y"]`), &s); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Len() != 2 || !s.Has("x") || !s.Has("y") {
		t.Fatalf("unexpected decoded set %v", s.Slice())
	}
}

func TestProfile_RelationTo(t *testing.T) {
	p := Profile{AccountID: "me", Likes: NewIDSet("liked"), Dislikes: NewIDSet("disliked")}

	if got := p.RelationTo("liked"); got != interaction.RelationLiked {
		t.Fatalf("expected liked, got %s", got)
	}
	if got := p.RelationTo("disliked"); got != interaction.RelationDisliked {
		t.Fatalf("expected disliked, got %s", got)
	}
	if got := p.RelationTo("stranger"); got != interaction.RelationNone {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestProfile_ExcludedFromCandidates(t *testing.T) {
	p := Profile{AccountID: "me", Likes: NewIDSet("a"), Dislikes: NewIDSet("b")}
	got := p.ExcludedFromCandidates()
	want := []string{"me", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAgeOn(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		birthday string
		age      int
		ok       bool
	}{
		{"2000-10-17", 26, true},
		{"2000-10-18", 25, true},
		{"2000-01-01", 26, true},
		{"2030-01-01", 0, false},
		{"17/10/2000", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		age, ok := AgeOn(tt.birthday, now)
		if ok != tt.ok || age != tt.age {
			t.Fatalf("AgeOn(%q) = %d,%v; want %d,%v", tt.birthday, age, ok, tt.age, tt.ok)
		}
	}
}
