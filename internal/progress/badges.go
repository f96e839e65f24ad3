package progress

import (
	"slices"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
)

// BadgeRule is a milestone that awards a badge once its trigger holds.
type BadgeRule struct {
	Name        models.BadgeName
	Description string
	Icon        string
	Trigger     func(streak, totalCompletions int) bool
}

// BadgeRules is evaluated in order; new badges are returned in the same order.
var BadgeRules = []BadgeRule{
	{
		Name:        models.BadgeWeekWarrior,
		Description: "Maintained a 7-day streak",
		Icon:        "🏅",
		Trigger:     func(streak, _ int) bool { return streak >= 7 },
	},
	{
		Name:        models.BadgeMonthlyMaster,
		Description: "Maintained a 30-day streak",
		Icon:        "🏆",
		Trigger:     func(streak, _ int) bool { return streak >= 30 },
	},
	{
		Name:        models.BadgeGettingStarted,
		Description: "Completed habit 10 times",
		Icon:        "⭐",
		Trigger:     func(_, total int) bool { return total >= 10 },
	},
	{
		Name:        models.BadgeHabitMaster,
		Description: "Completed habit 50 times",
		Icon:        "👑",
		Trigger:     func(_, total int) bool { return total >= 50 },
	},
}

// EvaluateBadges returns the badges newly earned for the given counters. A rule
// never fires for a name already in existing, so repeated calls with the same
// inputs return nothing and earned badges are never re-awarded.
func EvaluateBadges(streak, totalCompletions int, existing []models.BadgeName, now time.Time) []models.Badge {
	var earned []models.Badge
	for _, rule := range BadgeRules {
		if !rule.Trigger(streak, totalCompletions) || slices.Contains(existing, rule.Name) {
			continue
		}
		earned = append(earned, models.Badge{
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
			EarnedDate:  now,
		})
	}
	return earned
}
