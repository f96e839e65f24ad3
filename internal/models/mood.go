package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodNeutral  Mood = "neutral"
	MoodStressed Mood = "stressed"
	MoodSad      Mood = "sad"
)

var AllowedMoods = map[Mood]struct{}{
	MoodHappy:    {},
	MoodCalm:     {},
	MoodNeutral:  {},
	MoodStressed: {},
	MoodSad:      {},
}

var AllowedMoodActivities = map[string]struct{}{
	"exercise":   {},
	"work":       {},
	"social":     {},
	"relaxation": {},
	"family":     {},
	"hobbies":    {},
}

type MoodEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Mood       Mood               `bson:"mood" json:"mood"`
	Intensity  int                `bson:"intensity" json:"intensity"` // 1-10
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Activities []string           `bson:"activities,omitempty" json:"activities,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// MoodStats summarises mood entries over a window of days.
type MoodStats struct {
	Days             int            `json:"days"`
	Total            int            `json:"total"`
	AverageIntensity float64        `json:"average_intensity"`
	MostFrequent     Mood           `json:"most_frequent,omitempty"`
	ByMood           map[Mood]int   `json:"by_mood"`
	PerDay           map[string]int `json:"per_day"`
}
