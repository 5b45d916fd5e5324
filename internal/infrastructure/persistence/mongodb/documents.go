package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fate-inyeon/internal/domain/account"
	"fate-inyeon/internal/domain/match"
	"fate-inyeon/internal/domain/profile"
)

type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d accountDoc) toDomain() account.Account {
	return account.Account{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type preferencesDoc struct {
	Gender string `bson:"gender"`
	Age    []int  `bson:"age"`
}

type profileDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	AccountID   primitive.ObjectID   `bson:"accountId"`
	Name        string               `bson:"name"`
	Age         int                  `bson:"age"`
	Birthday    string               `bson:"birthday"`
	Gender      string               `bson:"gender"`
	Location    string               `bson:"location"`
	Bio         string               `bson:"bio"`
	Picture     string               `bson:"picture"`
	Preferences preferencesDoc       `bson:"preferences"`
	Likes       []primitive.ObjectID `bson:"likes"`
	Dislikes    []primitive.ObjectID `bson:"dislikes"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d profileDoc) toDomain() profile.Profile {
	p := profile.Profile{
		ID:        d.ID.Hex(),
		AccountID: d.AccountID.Hex(),
		Attributes: profile.Attributes{
			Name:     d.Name,
			Age:      d.Age,
			Birthday: d.Birthday,
			Gender:   d.Gender,
			Location: d.Location,
			Bio:      d.Bio,
			Picture:  d.Picture,
			Preferences: profile.Preferences{
				Gender: d.Preferences.Gender,
			},
		},
		Likes:     idSet(d.Likes),
		Dislikes:  idSet(d.Dislikes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if len(d.Preferences.Age) == 2 {
		p.Preferences.AgeRange = [2]int{d.Preferences.Age[0], d.Preferences.Age[1]}
	}
	return p
}

func newAttributesUpdate(a profile.Attributes, now time.Time) attributesUpdate {
	return attributesUpdate{
		Name:     a.Name,
		Age:      a.Age,
		Birthday: a.Birthday,
		Gender:   a.Gender,
		Location: a.Location,
		Bio:      a.Bio,
		Picture:  a.Picture,
		Preferences: preferencesDoc{
			Gender: a.Preferences.Gender,
			Age:    []int{a.Preferences.AgeRange[0], a.Preferences.AgeRange[1]},
		},
		UpdatedAt: now,
	}
}

// attributesUpdate is the $set payload of an attribute edit.
type attributesUpdate struct {
	Name        string         `bson:"name"`
	Age         int            `bson:"age"`
	Birthday    string         `bson:"birthday"`
	Gender      string         `bson:"gender"`
	Location    string         `bson:"location"`
	Bio         string         `bson:"bio"`
	Picture     string         `bson:"picture"`
	Preferences preferencesDoc `bson:"preferences"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

type matchDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Profiles  []primitive.ObjectID `bson:"profiles"`
	PairKey   string               `bson:"pairKey"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (d matchDoc) toDomain() match.Match {
	m := match.Match{ID: d.ID.Hex(), CreatedAt: d.CreatedAt}
	for i := 0; i < len(d.Profiles) && i < 2; i++ {
		m.Profiles[i] = d.Profiles[i].Hex()
	}
	return m
}

func idSet(ids []primitive.ObjectID) profile.IDSet {
	s := profile.NewIDSet()
	for _, id := range ids {
		s.Add(id.Hex())
	}
	return s
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}
