package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/config"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// ConnectDB opens a client, pings the primary and returns the configured database.
func ConnectDB(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Log.WithField("db", cfg.DBName).Info("Connected to MongoDB")
	return client.Database(cfg.DBName), nil
}

// Indexes lists the secondary indexes each collection needs.
var Indexes = map[string][]mongo.IndexModel{
	"habits": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed_dates.date", Value: -1}}},
	},
	"moods": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
	"users": {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"notifications": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	},
	"activities": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
}

// EnsureIndexes creates any missing indexes. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
		logger.Log.WithField("collection", coll).WithField("indexes", names).Debug("Indexes ensured")
	}
	return nil
}
