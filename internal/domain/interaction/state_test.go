package interaction

import (
	"errors"
	"testing"
)

func TestApply_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		from   Relation
		action Action
		to     Relation
		noop   bool
	}{
		{"like from none", RelationNone, ActionLike, RelationLiked, false},
		{"like twice", RelationLiked, ActionLike, RelationLiked, true},
		{"like after dislike", RelationDisliked, ActionLike, RelationLiked, false},
		{"dislike from none", RelationNone, ActionDislike, RelationDisliked, false},
		{"dislike retracts like", RelationLiked, ActionDislike, RelationDisliked, false},
		{"dislike twice", RelationDisliked, ActionDislike, RelationDisliked, true},
		{"retract like", RelationLiked, ActionRetract, RelationNone, false},
		{"retract nothing", RelationNone, ActionRetract, RelationNone, true},
		{"retract keeps dislike", RelationDisliked, ActionRetract, RelationDisliked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Apply(tt.from, tt.action)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tr.To != tt.to {
				t.Fatalf("expected %s, got %s", tt.to, tr.To)
			}
			if tr.NoOp != tt.noop {
				t.Fatalf("expected noop=%v, got %v", tt.noop, tr.NoOp)
			}
			if tr.From != tt.from || tr.Action != tt.action {
				t.Fatalf("transition does not echo its input: %+v", tr)
			}
		})
	}
}

func TestApply_Invalid(t *testing.T) {
	if _, err := Apply(RelationNone, Action(42)); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := Apply(Relation(9), ActionLike); !errors.Is(err, ErrUnknownRelation) {
		t.Fatalf("expected ErrUnknownRelation, got %v", err)
	}
}

func TestMutual(t *testing.T) {
	if !Mutual(RelationLiked, RelationLiked) {
		t.Fatalf("two likes must be mutual")
	}
	if Mutual(RelationLiked, RelationNone) || Mutual(RelationLiked, RelationDisliked) {
		t.Fatalf("one-sided like must not be mutual")
	}
}
