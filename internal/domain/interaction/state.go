// Package interaction holds the relationship state one account has toward
// another and the transitions allowed between those states.
package interaction

import (
	"errors"
	"fmt"
)

// Relation is the state of one ordered pair (A toward B). A profile keeps
// the relation implicitly through its likes and dislikes sets; there is no
// state in which A both likes and dislikes B.
type Relation int

const (
	RelationNone Relation = iota
	RelationLiked
	RelationDisliked
)

func (r Relation) String() string {
	switch r {
	case RelationNone:
		return "none"
	case RelationLiked:
		return "liked"
	case RelationDisliked:
		return "disliked"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

type Action int

const (
	ActionLike Action = iota
	ActionDislike
	// ActionRetract withdraws a like. It is what unmatching does to both sides.
	ActionRetract
)

func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionDislike:
		return "dislike"
	case ActionRetract:
		return "retract"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

var (
	ErrUnknownAction   = errors.New("unknown interaction action")
	ErrUnknownRelation = errors.New("unknown relation")
)

type Transition struct {
	From   Relation
	To     Relation
	Action Action
	// NoOp is set when the action leaves the relation unchanged, e.g. liking
	// an already liked account.
	NoOp bool
}

// Apply validates an action against the current relation and returns the
// resulting transition.
func Apply(from Relation, action Action) (Transition, error) {
	if from < RelationNone || from > RelationDisliked {
		return Transition{}, ErrUnknownRelation
	}

	var to Relation
	switch action {
	case ActionLike:
		to = RelationLiked
	case ActionDislike:
		to = RelationDisliked
	case ActionRetract:
		to = from
		if from == RelationLiked {
			to = RelationNone
		}
	default:
		return Transition{}, ErrUnknownAction
	}

	return Transition{From: from, To: to, Action: action, NoOp: from == to}, nil
}

// Mutual reports whether two opposite relations form a reciprocal like.
func Mutual(ab, ba Relation) bool {
	return ab == RelationLiked && ba == RelationLiked
}
