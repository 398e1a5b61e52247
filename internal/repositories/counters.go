package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cabzii/internal/domain"
)

// CounterRepo reserves sequence numbers from a counters collection with an
// atomic $inc upsert, so concurrent creators can never observe the same
// value. This replaces count-then-insert ID generation, which races.
type CounterRepo struct {
	DB *mongo.Database
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next reserves and returns the next sequence number for the named entity
// type. Gaps can appear when a reserved number is never used; duplicates
// cannot.
func (r CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	res := r.DB.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc counterDoc
	if err := res.Decode(&doc); err != nil {
		return 0, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return doc.Seq, nil
}
