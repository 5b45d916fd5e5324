package profile

import (
	"time"

	"fate-inyeon/internal/domain/interaction"
)

const BirthdayLayout = "2006-01-02"

// Preferences is what a profile is looking for. AgeRange is stored as
// [min, max] but is not used to filter candidates.
type Preferences struct {
	Gender   string
	AgeRange [2]int
}

// Attributes are the user-editable parts of a profile.
type Attributes struct {
	Name        string
	Age         int
	Birthday    string
	Gender      string
	Location    string
	Bio         string
	Picture     string
	Preferences Preferences
}

type Profile struct {
	ID        string
	AccountID string
	Attributes

	Likes    IDSet
	Dislikes IDSet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RelationTo derives the relation this profile holds toward accountID.
func (p Profile) RelationTo(accountID string) interaction.Relation {
	switch {
	case p.Likes.Has(accountID):
		return interaction.RelationLiked
	case p.Dislikes.Has(accountID):
		return interaction.RelationDisliked
	default:
		return interaction.RelationNone
	}
}

// ExcludedFromCandidates returns every account ID that must not be offered
// to this profile again: itself and everyone it already liked or disliked.
func (p Profile) ExcludedFromCandidates() []string {
	out := make([]string, 0, 1+p.Likes.Len()+p.Dislikes.Len())
	out = append(out, p.AccountID)
	out = append(out, p.Likes.Slice()...)
	out = append(out, p.Dislikes.Slice()...)
	return out
}

// AgeOn derives the age in whole years from a YYYY-MM-DD birthday. ok is
// false when the birthday does not parse or lies in the future.
func AgeOn(birthday string, now time.Time) (int, bool) {
	b, err := time.Parse(BirthdayLayout, birthday)
	if err != nil {
		return 0, false
	}
	now = now.UTC()
	if b.After(now) {
		return 0, false
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age, true
}
