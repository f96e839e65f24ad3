package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityHabitCreated   = "habit_created"
	ActivityHabitCompleted = "habit_completed"
	ActivityHabitDeleted   = "habit_deleted"
	ActivityBadgeEarned    = "badge_earned"
	ActivityMoodLogged     = "mood_logged"
)

type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`           // e.g. "habit_completed", "badge_earned"
	TargetID  primitive.ObjectID `bson:"target_id" json:"target_id"` // the habit or mood entry
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Message   string             `bson:"message" json:"message"`
}
