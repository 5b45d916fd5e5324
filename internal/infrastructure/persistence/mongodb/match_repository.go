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

	"fate-inyeon/internal/domain/match"
)

type MatchRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{coll: db.Collection(collMatches), now: time.Now}
}

// CreateIfAbsent upserts on the unique pairKey, so concurrent calls for the
// same pair insert one document between them.
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, a, b string) (match.Match, bool, error) {
	ids, err := objectIDs([]string{a, b})
	if err != nil {
		return match.Match{}, false, fmt.Errorf("match participants: %w", err)
	}
	key := match.PairKey(a, b)

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"pairKey": key},
		bson.M{"$setOnInsert": bson.M{
			"profiles":  ids,
			"pairKey":   key,
			"createdAt": r.now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return match.Match{}, false, fmt.Errorf("upsert match: %w", err)
	}

	created := err == nil && res.UpsertedCount == 1
	m, err := r.findOne(ctx, bson.M{"pairKey": key})
	if err != nil {
		return match.Match{}, false, err
	}
	return m, created, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return match.Match{}, match.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MatchRepository) ListByParticipant(ctx context.Context, accountID string) ([]match.Match, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return []match.Match{}, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"profiles": oid}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]match.Match, 0)
	for cur.Next(ctx) {
		var doc matchDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

func (r *MatchRepository) DeleteForParticipant(ctx context.Context, id, accountID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	participant, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "profiles": participant})
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *MatchRepository) findOne(ctx context.Context, filter bson.M) (match.Match, error) {
	var doc matchDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, fmt.Errorf("find match: %w", err)
	}
	return doc.toDomain(), nil
}
