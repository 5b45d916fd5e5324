package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fate-inyeon/internal/domain/profile"
)

type ProfileRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collProfiles), now: time.Now}
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	accountID, err := primitive.ObjectIDFromHex(p.AccountID)
	if err != nil {
		return profile.Profile{}, profile.ErrInvalidID
	}
	likes, err := objectIDs(p.Likes.Slice())
	if err != nil {
		return profile.Profile{}, profile.ErrInvalidID
	}
	dislikes, err := objectIDs(p.Dislikes.Slice())
	if err != nil {
		return profile.Profile{}, profile.ErrInvalidID
	}

	now := r.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	doc := profileDoc{
		ID:        primitive.NewObjectID(),
		AccountID: accountID,
		Name:      p.Name,
		Age:       p.Age,
		Birthday:  p.Birthday,
		Gender:    p.Gender,
		Location:  p.Location,
		Bio:       p.Bio,
		Picture:   p.Picture,
		Preferences: preferencesDoc{
			Gender: p.Preferences.Gender,
			Age:    []int{p.Preferences.AgeRange[0], p.Preferences.AgeRange[1]},
		},
		Likes:     likes,
		Dislikes:  dislikes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return profile.Profile{}, profile.ErrAlreadyExists
		}
		return profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID string) (profile.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return profile.Profile{}, profile.ErrInvalidID
	}

	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"accountId": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) UpdateAttributes(ctx context.Context, accountID string, attrs profile.Attributes) (profile.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return profile.Profile{}, profile.ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc profileDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"accountId": oid},
		bson.M{"$set": newAttributesUpdate(attrs, r.now().UTC())},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) ListCandidates(ctx context.Context, f profile.CandidateFilter) ([]profile.Profile, error) {
	exclude, err := objectIDs(f.Exclude)
	if err != nil {
		return nil, profile.ErrInvalidID
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"accountId": bson.M{"$nin": exclude}, "gender": f.Gender},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]profile.Profile, 0)
	for cur.Next(ctx) {
		var doc profileDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func (r *ProfileRepository) Like(ctx context.Context, accountID, targetID string) error {
	return r.update(ctx, accountID, targetID, true, func(target primitive.ObjectID) bson.M {
		return bson.M{
			"$addToSet": bson.M{"likes": target},
			"$pull":     bson.M{"dislikes": target},
		}
	})
}

func (r *ProfileRepository) Dislike(ctx context.Context, accountID, targetID string) error {
	return r.update(ctx, accountID, targetID, true, func(target primitive.ObjectID) bson.M {
		return bson.M{
			"$addToSet": bson.M{"dislikes": target},
			"$pull":     bson.M{"likes": target},
		}
	})
}

func (r *ProfileRepository) RetractLike(ctx context.Context, accountID, targetID string) error {
	err := r.update(ctx, accountID, targetID, false, func(target primitive.ObjectID) bson.M {
		return bson.M{"$pull": bson.M{"likes": target}}
	})
	if errors.Is(err, profile.ErrInvalidID) {
		return nil
	}
	return err
}

func (r *ProfileRepository) update(ctx context.Context, accountID, targetID string, mustExist bool, build func(target primitive.ObjectID) bson.M) error {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return profile.ErrInvalidID
	}
	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return profile.ErrInvalidID
	}

	update := build(target)
	update["$set"] = bson.M{"updatedAt": r.now().UTC()}

	res, err := r.coll.UpdateOne(ctx, bson.M{"accountId": oid}, update)
	if err != nil {
		return fmt.Errorf("update profile sets: %w", err)
	}
	if mustExist && res.MatchedCount == 0 {
		return profile.ErrNotFound
	}
	return nil
}
