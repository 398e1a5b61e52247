package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

type AdminRepo struct {
	DB *mongo.Database
}

func (r AdminRepo) coll() *mongo.Collection {
	return r.DB.Collection("admins")
}

func (r AdminRepo) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var u models.AdminUser
	err := r.coll().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, domain.NotFoundError{Resource: "admin"}
	}
	if err != nil {
		return u, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return u, nil
}

func (r AdminRepo) FindByID(ctx context.Context, id string) (models.AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.AdminUser{}, domain.NotFoundError{Resource: "admin", Err: err}
	}
	var u models.AdminUser
	err = r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, domain.NotFoundError{Resource: "admin"}
	}
	if err != nil {
		return u, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return u, nil
}

func (r AdminRepo) Insert(ctx context.Context, u models.AdminUser) (models.AdminUser, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.coll().InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return u, domain.ConflictError{Resource: "admin", Msg: "email already registered"}
	}
	if err != nil {
		return u, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return u, nil
}

func (r AdminRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "admin"}
	}
	return nil
}
