package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository stores the per-user activity feed.
type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{collection: db.Collection("activities")}
}

// CreateActivity appends an entry and fills in its ID.
func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		logrus.WithError(err).WithField("type", activity.Type).Error("Failed to insert activity")
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// GetUserActivities returns at most limit entries for the user, newest first.
func (r *ActivityRepository) GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}
