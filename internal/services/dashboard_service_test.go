package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/Wellness_Tracker/internal/memstore"
	"github.com/Dias221467/Wellness_Tracker/internal/models"
)

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestUserService()
	user, err := users.RegisterUser(ctx, "ana", "ana@example.com", "correct horse")
	require.NoError(t, err)
	_, err = users.UpdateProfile(ctx, user.ID, models.Profile{HealthGoals: []string{"drink more water"}})
	require.NoError(t, err)

	f := newHabitFixture(t)
	f.userID = user.ID
	habit := f.createHabit(t)
	_, err = f.svc.LogCompletion(ctx, user.ID, habit.ID.Hex(), CompletionInput{Value: amount(6)})
	require.NoError(t, err)
	_, err = f.svc.LogCompletion(ctx, user.ID, habit.ID.Hex(), CompletionInput{Value: amount(4)})
	require.NoError(t, err)

	moods := &memstore.MoodStore{}
	base := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		_, err := moods.CreateMood(ctx, &models.MoodEntry{
			UserID:    user.ID,
			Mood:      models.MoodCalm,
			Intensity: i + 1,
			Timestamp: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	svc := NewDashboardService(users, f.svc, moods, NewActivityService(f.activities))
	dash, err := svc.GetDashboard(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "ana", dash.Username)
	assert.Equal(t, []string{"drink more water"}, dash.HealthGoals)

	require.Len(t, dash.MoodTrends, dashboardMoodEntries)
	assert.Equal(t, 3, dash.MoodTrends[0].Intensity)
	assert.Equal(t, 9, dash.MoodTrends[6].Intensity)

	require.Len(t, dash.HabitProgress, 1)
	hp := dash.HabitProgress[0]
	assert.Equal(t, 10.0, hp.TodayValue)
	assert.Equal(t, 100.0, hp.Progress)
	assert.Equal(t, 1, hp.Streak)

	assert.NotEmpty(t, dash.RecentActivity)
	assert.Equal(t, models.ActivityHabitCompleted, dash.RecentActivity[0].Type)
}
