package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
)

func badgeNames(badges []models.Badge) []models.BadgeName {
	names := make([]models.BadgeName, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	return names
}

func TestEvaluateBadges_Thresholds(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		streak int
		total  int
		want   []models.BadgeName
	}{
		{"nothing yet", 0, 0, nil},
		{"streak six", 6, 6, nil},
		{"streak seven", 7, 7, []models.BadgeName{models.BadgeWeekWarrior}},
		{"streak thirty", 30, 30, []models.BadgeName{
			models.BadgeWeekWarrior, models.BadgeMonthlyMaster, models.BadgeGettingStarted,
		}},
		{"nine completions", 1, 9, nil},
		{"ten completions", 1, 10, []models.BadgeName{models.BadgeGettingStarted}},
		{"fifty completions", 0, 50, []models.BadgeName{models.BadgeGettingStarted, models.BadgeHabitMaster}},
		{"everything", 30, 50, []models.BadgeName{
			models.BadgeWeekWarrior, models.BadgeMonthlyMaster,
			models.BadgeGettingStarted, models.BadgeHabitMaster,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBadges(tt.streak, tt.total, nil, now)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, badgeNames(got))
		})
	}
}

func TestEvaluateBadges_FieldsFromRuleTable(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	got := EvaluateBadges(7, 0, nil, now)
	require.Len(t, got, 1)
	assert.Equal(t, models.Badge{
		Name:        models.BadgeWeekWarrior,
		Description: "Maintained a 7-day streak",
		Icon:        "🏅",
		EarnedDate:  now,
	}, got[0])
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	now := time.Now()
	first := EvaluateBadges(30, 50, nil, now)
	require.Len(t, first, 4)

	second := EvaluateBadges(30, 50, badgeNames(first), now)
	assert.Empty(t, second)
}

func TestEvaluateBadges_Monotonic(t *testing.T) {
	held := []models.BadgeName{models.BadgeWeekWarrior}

	// Streak drops below the threshold and climbs back: never re-awarded.
	for _, streak := range []int{3, 0, 7, 12} {
		got := EvaluateBadges(streak, 1, held, time.Now())
		assert.NotContains(t, badgeNames(got), models.BadgeWeekWarrior)
	}
}

func TestEvaluateBadges_SkipsOnlyHeldNames(t *testing.T) {
	held := []models.BadgeName{models.BadgeGettingStarted}
	got := EvaluateBadges(7, 10, held, time.Now())
	assert.Equal(t, []models.BadgeName{models.BadgeWeekWarrior}, badgeNames(got))
}
