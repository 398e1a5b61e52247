package config

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	DB     *mongo.Database
	dbMu   sync.Mutex
)

// ConnectDB initializes the shared Mongo connection (idempotent).
func ConnectDB(env Env) *mongo.Database {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(env.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}

	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}

	client = c
	DB = c.Database(env.MongoDB)
	log.Printf("connected to MongoDB database %q", env.MongoDB)
	return DB
}

// EnsureDB pings the active connection.
func EnsureDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if client == nil {
		return mongo.ErrClientDisconnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
		client = nil
		DB = nil
	}
}
