package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the wellness tracker.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Profile        Profile            `bson:"profile" json:"profile"`
	LastActiveAt   time.Time          `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profile holds the health details used to personalise recommendations.
type Profile struct {
	Age               int      `bson:"age,omitempty" json:"age,omitempty"`
	Weight            float64  `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height            float64  `bson:"height,omitempty" json:"height,omitempty"` // cm
	DietaryPreference string   `bson:"dietary_preference,omitempty" json:"dietaryPreference,omitempty"`
	StressLevel       int      `bson:"stress_level,omitempty" json:"stressLevel,omitempty"`
	Mood              string   `bson:"mood,omitempty" json:"mood,omitempty"`
	ActivityLevel     string   `bson:"activity_level,omitempty" json:"activityLevel,omitempty"`
	SleepHours        float64  `bson:"sleep_hours,omitempty" json:"sleepHours,omitempty"`
	HealthGoals       []string `bson:"health_goals,omitempty" json:"healthGoals,omitempty"`
}

type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

// Public strips everything but identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// AllowedActivityLevels lists the accepted Profile.ActivityLevel values.
var AllowedActivityLevels = map[string]struct{}{
	"sedentary": {},
	"light":     {},
	"moderate":  {},
	"very":      {},
	"extra":     {},
}
