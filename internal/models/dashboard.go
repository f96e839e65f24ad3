package models

// HabitProgress is the dashboard view of a single habit.
type HabitProgress struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          HabitKind `json:"type"`
	Streak        int       `json:"streak"`
	LongestStreak int       `json:"longest_streak"`
	Target        float64   `json:"target"`
	Unit          string    `json:"unit"`
	TodayValue    float64   `json:"today_value"`
	Progress      float64   `json:"progress"` // percent of today's target, capped at 100
}

type Dashboard struct {
	Username       string          `json:"username"`
	MoodTrends     []MoodEntry     `json:"moodTrends"`
	HabitProgress  []HabitProgress `json:"habitProgress"`
	HealthGoals    []string        `json:"healthGoals"`
	RecentActivity []Activity      `json:"recentActivity"`
}
