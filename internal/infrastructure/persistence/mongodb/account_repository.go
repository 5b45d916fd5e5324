package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fate-inyeon/internal/domain/account"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(collAccounts)}
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) (account.Account, error) {
	doc := accountDoc{
		ID:        primitive.NewObjectID(),
		Email:     a.Email,
		Password:  a.PasswordHash,
		CreatedAt: a.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return account.Account{}, account.ErrEmailTaken
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return account.Account{}, account.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (account.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}
