package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HabitRepository handles database operations related to habits
type HabitRepository struct {
	collection *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

// CreateHabit inserts a new habit with empty progress
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt
	if habit.CompletedDates == nil {
		habit.CompletedDates = []models.CompletionEvent{}
	}
	if habit.Badges == nil {
		habit.Badges = []models.Badge{}
	}

	result, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, fmt.Errorf("failed to insert habit: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to find habit by ID")
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	return &habit, nil
}

// GetHabits fetches a user's habits, optionally filtered by kind
func (r *HabitRepository) GetHabits(ctx context.Context, userID primitive.ObjectID, kind models.HabitKind) ([]models.Habit, error) {
	filter := bson.M{"user_id": userID}
	if kind != "" {
		filter["type"] = kind
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}
	defer cursor.Close(ctx)

	habits := []models.Habit{}
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, fmt.Errorf("failed to decode habits: %w", err)
	}
	return habits, nil
}

// ForEachHabit streams every habit in the collection to fn. Iteration stops at
// the first error fn returns.
func (r *HabitRepository) ForEachHabit(ctx context.Context, fn func(*models.Habit) error) error {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetBatchSize(200))
	if err != nil {
		return fmt.Errorf("failed to scan habits: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			return fmt.Errorf("failed to decode habit: %w", err)
		}
		if err := fn(&habit); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// UpdateHabitDetails changes the editable fields of a habit. Progress fields are
// untouched, so no recomputation is needed.
func (r *HabitRepository) UpdateHabitDetails(ctx context.Context, habit *models.Habit) error {
	habit.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": habit.ID},
		bson.M{"$set": bson.M{
			"name":       habit.Name,
			"target":     habit.Target,
			"unit":       habit.Unit,
			"frequency":  habit.Frequency,
			"updated_at": habit.UpdatedAt,
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habit.ID.Hex()).Error("Failed to update habit")
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveProgress writes the completion log, cached streaks and badges in one
// update, guarded by the version the habit was read at. On success the habit's
// version is advanced; ErrVersionConflict means someone else wrote first.
func (r *HabitRepository) SaveProgress(ctx context.Context, habit *models.Habit) error {
	habit.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": habit.ID, "version": habit.Version},
		bson.M{
			"$set": bson.M{
				"completed_dates": habit.CompletedDates,
				"streak":          habit.Streak,
				"longest_streak":  habit.LongestStreak,
				"badges":          habit.Badges,
				"updated_at":      habit.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habit.ID.Hex()).Error("Failed to save habit progress")
		return fmt.Errorf("failed to save habit progress: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	habit.Version++
	return nil
}

// UpdateStreaks refreshes only the cached streak values, with the same version guard as SaveProgress.
func (r *HabitRepository) UpdateStreaks(ctx context.Context, id primitive.ObjectID, version int64, streak, longest int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "version": version},
		bson.M{
			"$set": bson.M{"streak": streak, "longest_streak": longest},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

// DeleteHabit deletes a habit and, with it, its completions and badges
func (r *HabitRepository) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return nil
}
