package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

// CatalogRepo persists one catalog collection (tour packages, vehicles,
// call-driver categories or cabs). The same shape serves them all; the
// service layer decides prefixes and allow-lists.
type CatalogRepo struct {
	DB         *mongo.Database
	Collection string
}

func (r CatalogRepo) coll() *mongo.Collection {
	return r.DB.Collection(r.Collection)
}

func (r CatalogRepo) Insert(ctx context.Context, p models.CatalogParent) error {
	_, err := r.coll().InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ConflictError{Resource: r.Collection, Msg: "duplicate id or slug"}
	}
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return nil
}

func (r CatalogRepo) Get(ctx context.Context, id string) (models.CatalogParent, error) {
	var p models.CatalogParent
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, domain.NotFoundError{Resource: r.Collection}
	}
	if err != nil {
		return p, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return p, nil
}

func (r CatalogRepo) GetBySlug(ctx context.Context, slug string) (models.CatalogParent, error) {
	var p models.CatalogParent
	err := r.coll().FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, domain.NotFoundError{Resource: r.Collection}
	}
	if err != nil {
		return p, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return p, nil
}

// List returns all parents, newest first.
func (r CatalogRepo) List(ctx context.Context) ([]models.CatalogParent, error) {
	cur, err := r.coll().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	defer cur.Close(ctx)

	var out []models.CatalogParent
	if err := cur.All(ctx, &out); err != nil {
		return nil, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return out, nil
}

func (r CatalogRepo) Update(ctx context.Context, id string, set map[string]any) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ConflictError{Resource: r.Collection, Msg: "duplicate slug"}
	}
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: r.Collection}
	}
	return nil
}

func (r CatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: r.Collection}
	}
	return nil
}

// NextChildSeq reserves the next scoped child sequence on a parent with an
// atomic $inc. Reserved numbers are never handed out twice, so child IDs stay
// monotonic per parent and deleted siblings never free their IDs.
func (r CatalogRepo) NextChildSeq(ctx context.Context, id string) (int64, error) {
	res := r.coll().FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"childSeq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var p models.CatalogParent
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.NotFoundError{Resource: r.Collection}
		}
		return 0, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return p.ChildSeq, nil
}

func (r CatalogRepo) PushChild(ctx context.Context, id string, c models.CatalogChild) error {
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"children": c},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: r.Collection}
	}
	return nil
}

// UpdateChild sets fields on one embedded child via the positional $ operator.
func (r CatalogRepo) UpdateChild(ctx context.Context, parentID, childID string, set map[string]any) error {
	positional := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		positional["children.$."+k] = v
	}
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": parentID, "children._id": childID},
		bson.M{"$set": positional},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: r.Collection + " child"}
	}
	return nil
}

// PullChild removes one embedded child. The filter matches the child too, so
// a parent that exists without that child reports the child as missing rather
// than silently succeeding.
func (r CatalogRepo) PullChild(ctx context.Context, parentID, childID string) error {
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": parentID, "children._id": childID},
		bson.M{
			"$pull": bson.M{"children": bson.M{"_id": childID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		if _, err := r.Get(ctx, parentID); err != nil {
			return err
		}
		return domain.NotFoundError{Resource: r.Collection + " child"}
	}
	return nil
}
