package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 7 * 24 * time.Hour

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification. CreatedAt defaults to now and
// ExpiresAt is derived from it.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	notif.ExpiresAt = notif.CreatedAt.Add(NotificationTTL)

	result, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		notif.ID = id
	}
	return nil
}

// GetNotificationByID fetches one notification
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notif models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notif)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}
	return &notif, nil
}

// GetUserNotifications returns all unexpired notifications for a user
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{
		"user_id":    userID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkAsRead sets notification's Read to true
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNotification deletes a notification
func (r *NotificationRepository) DeleteNotification(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLatestNotificationByType returns the newest notification of a type for a
// user about target. A nil target matches any.
func (r *NotificationRepository) GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string, target *primitive.ObjectID) (*models.Notification, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    notifType,
	}
	if target != nil {
		filter["target_id"] = *target
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var notif models.Notification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&notif)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

// DeleteExpiredNotifications removes notifications past their expiry
func (r *NotificationRepository) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	filter := bson.M{"expires_at": bson.M{"$lte": time.Now()}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", err)
	}
	logrus.Infof("Deleted %d expired notifications", result.DeletedCount)
	return result.DeletedCount, nil
}
