package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the domain relies on: one client
// per mobile, one admin per email, and unique slugs per catalog collection.
// The slug index is what turns an empty or duplicate title into a Conflict
// instead of silently storing colliding documents.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(coll string, key string) error {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}

	if err := unique("clients", "mobile"); err != nil {
		return err
	}
	if err := unique("admins", "email"); err != nil {
		return err
	}
	for _, coll := range []string{"tourpackages", "vehicles", "calldrivers", "cabs"} {
		if err := unique(coll, "slug"); err != nil {
			return err
		}
	}
	return nil
}
