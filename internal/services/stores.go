package services

import (
	"context"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are satisfied by the Mongo repositories in
// internal/repository and by the in-memory stores in internal/memstore.

type HabitStore interface {
	CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabits(ctx context.Context, userID primitive.ObjectID, kind models.HabitKind) ([]models.Habit, error)
	ForEachHabit(ctx context.Context, fn func(*models.Habit) error) error
	UpdateHabitDetails(ctx context.Context, habit *models.Habit) error
	SaveProgress(ctx context.Context, habit *models.Habit) error
	UpdateStreaks(ctx context.Context, id primitive.ObjectID, version int64, streak, longest int) error
	DeleteHabit(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile models.Profile) error
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

type MoodStore interface {
	CreateMood(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	GetMoods(ctx context.Context, userID primitive.ObjectID, since time.Time, limit int) ([]models.MoodEntry, error)
	DeleteMood(ctx context.Context, id, userID primitive.ObjectID) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string, target *primitive.ObjectID) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error)
}
