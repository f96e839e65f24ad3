package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitKind is the category of a tracked habit.
type HabitKind string

const (
	HabitWater      HabitKind = "water"
	HabitExercise   HabitKind = "exercise"
	HabitMeditation HabitKind = "meditation"
	HabitSleep      HabitKind = "sleep"
	HabitNutrition  HabitKind = "nutrition"
	HabitCustom     HabitKind = "custom"
)

// AllowedHabitKinds lists every accepted HabitKind.
var AllowedHabitKinds = map[HabitKind]struct{}{
	HabitWater:      {},
	HabitExercise:   {},
	HabitMeditation: {},
	HabitSleep:      {},
	HabitNutrition:  {},
	HabitCustom:     {},
}

// Frequency is the period a habit's target applies to.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// BadgeName identifies a milestone rule and the badge it awards.
type BadgeName string

const (
	BadgeWeekWarrior    BadgeName = "Week Warrior"
	BadgeMonthlyMaster  BadgeName = "Monthly Master"
	BadgeGettingStarted BadgeName = "Getting Started"
	BadgeHabitMaster    BadgeName = "Habit Master"
)

// Habit is a tracked behaviour owned by a user. Completion events and badges are
// embedded, so deleting the habit removes them too.
type Habit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name           string             `bson:"name" json:"name"`
	Type           HabitKind          `bson:"type" json:"type"`
	Target         float64            `bson:"target" json:"target"`
	Unit           string             `bson:"unit" json:"unit"`
	Frequency      Frequency          `bson:"frequency" json:"frequency"`
	Streak         int                `bson:"streak" json:"streak"`                 // cache, see progress.CurrentStreak
	LongestStreak  int                `bson:"longest_streak" json:"longest_streak"` // cache, see progress.LongestStreak
	CompletedDates []CompletionEvent  `bson:"completed_dates" json:"completed_dates"`
	Badges         []Badge            `bson:"badges" json:"badges"`
	Version        int64              `bson:"version" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// CompletionEvent is one logged amount for a calendar day.
type CompletionEvent struct {
	Date  time.Time `bson:"date" json:"date"`
	Value float64   `bson:"value" json:"value"`
}

// Badge is a milestone award. EarnedDate never changes once set.
type Badge struct {
	Name        BadgeName `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	EarnedDate  time.Time `bson:"earned_date" json:"earned_date"`
}

// BadgeNames returns the names of the badges the habit already holds.
func (h *Habit) BadgeNames() []BadgeName {
	names := make([]BadgeName, 0, len(h.Badges))
	for _, b := range h.Badges {
		names = append(names, b.Name)
	}
	return names
}

// HabitSummary aggregates streak and completion statistics for a single habit.
type HabitSummary struct {
	HabitID          string     `json:"habit_id"`
	Name             string     `json:"name"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	TotalCompletions int        `json:"total_completions"`
	DaysCompleted    int        `json:"days_completed"`
	ThisMonth        int        `json:"this_month"`
	FirstLogged      *time.Time `json:"first_logged,omitempty"`
	LastLogged       *time.Time `json:"last_logged,omitempty"`
	Badges           int        `json:"badges"`
}
