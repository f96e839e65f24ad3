package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MoodRepository struct {
	collection *mongo.Collection
}

func NewMoodRepository(db *mongo.Database) *MoodRepository {
	return &MoodRepository{
		collection: db.Collection("moods"),
	}
}

// CreateMood inserts a mood entry
func (r *MoodRepository) CreateMood(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert mood entry")
		return nil, fmt.Errorf("failed to insert mood entry: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return entry, nil
}

// GetMoods returns a user's entries newest first. A zero since means no lower
// bound and a limit of 0 means no limit.
func (r *MoodRepository) GetMoods(ctx context.Context, userID primitive.ObjectID, since time.Time, limit int) ([]models.MoodEntry, error) {
	filter := bson.M{"user_id": userID}
	if !since.IsZero() {
		filter["timestamp"] = bson.M{"$gte": since}
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.MoodEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode moods: %w", err)
	}
	return entries, nil
}

// DeleteMood removes an entry only if it belongs to userID.
func (r *MoodRepository) DeleteMood(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
