package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	dashboardMoodEntries = 7
	dashboardActivities  = 10
)

// DashboardService aggregates the data shown on the user's home screen.
type DashboardService struct {
	users      *UserService
	habits     *HabitService
	moods      MoodStore
	activities *ActivityService
}

func NewDashboardService(users *UserService, habits *HabitService, moods MoodStore, activities *ActivityService) *DashboardService {
	return &DashboardService{
		users:      users,
		habits:     habits,
		moods:      moods,
		activities: activities,
	}
}

// GetDashboard returns recent moods oldest first, per-habit progress for today,
// health goals and recent activity.
func (s *DashboardService) GetDashboard(ctx context.Context, userID primitive.ObjectID) (*models.Dashboard, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	moods, err := s.moods.GetMoods(ctx, userID, time.Time{}, dashboardMoodEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	slices.Reverse(moods)

	habits, err := s.habits.ListHabits(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	progress := make([]models.HabitProgress, 0, len(habits))
	for i := range habits {
		progress = append(progress, s.habitProgress(&habits[i]))
	}

	activities, err := s.activities.GetRecentActivities(ctx, userID, dashboardActivities)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	goals := user.Profile.HealthGoals
	if goals == nil {
		goals = []string{}
	}
	return &models.Dashboard{
		Username:       user.Username,
		MoodTrends:     moods,
		HabitProgress:  progress,
		HealthGoals:    goals,
		RecentActivity: activities,
	}, nil
}

func (s *DashboardService) habitProgress(habit *models.Habit) models.HabitProgress {
	today := s.habits.TodayValue(habit)
	pct := 0.0
	if habit.Target > 0 {
		pct = min(100, today/habit.Target*100)
	}
	return models.HabitProgress{
		ID:            habit.ID.Hex(),
		Name:          habit.Name,
		Type:          habit.Type,
		Streak:        habit.Streak,
		LongestStreak: habit.LongestStreak,
		Target:        habit.Target,
		Unit:          habit.Unit,
		TodayValue:    today,
		Progress:      pct,
	}
}
