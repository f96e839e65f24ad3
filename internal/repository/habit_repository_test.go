package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
)

const habitsNS = "wellness.habits"

func TestHabitRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and empty progress", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		habit, err := repo.CreateHabit(ctx, &models.Habit{
			UserID: primitive.NewObjectID(),
			Name:   "Drink water",
			Type:   models.HabitWater,
		})
		require.NoError(t, err)
		assert.False(t, habit.ID.IsZero())
		assert.NotNil(t, habit.CompletedDates)
		assert.NotNil(t, habit.Badges)
		assert.False(t, habit.CreatedAt.IsZero())
	})

	mt.Run("get by id decodes completions", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		id := primitive.NewObjectID()
		day := time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, habitsNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Meditate"},
			{Key: "type", Value: "meditation"},
			{Key: "streak", Value: 1},
			{Key: "version", Value: int64(4)},
			{Key: "completed_dates", Value: bson.A{
				bson.D{{Key: "date", Value: day}, {Key: "value", Value: 15.0}},
			}},
		}))

		habit, err := repo.GetHabitByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Meditate", habit.Name)
		assert.Equal(t, models.HabitMeditation, habit.Type)
		assert.Equal(t, int64(4), habit.Version)
		require.Len(t, habit.CompletedDates, 1)
		assert.True(t, habit.CompletedDates[0].Date.Equal(day))
		assert.Equal(t, 15.0, habit.CompletedDates[0].Value)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, habitsNS, mtest.FirstBatch))

		_, err := repo.GetHabitByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("save progress bumps version", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		habit := &models.Habit{ID: primitive.NewObjectID(), Version: 2, Streak: 3}
		require.NoError(t, repo.SaveProgress(ctx, habit))
		assert.Equal(t, int64(3), habit.Version)
	})

	mt.Run("save progress reports conflict", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		habit := &models.Habit{ID: primitive.NewObjectID(), Version: 2}
		err := repo.SaveProgress(ctx, habit)
		assert.ErrorIs(t, err, ErrVersionConflict)
		assert.Equal(t, int64(2), habit.Version)
	})

	mt.Run("update streaks reports conflict", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.UpdateStreaks(ctx, primitive.NewObjectID(), 1, 0, 5)
		assert.ErrorIs(t, err, ErrVersionConflict)
	})

	mt.Run("delete missing habit", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteHabit(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("list habits", func(mt *mtest.T) {
		repo := &HabitRepository{collection: mt.Coll}
		userID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, habitsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: userID}, {Key: "name", Value: "Walk"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: userID}, {Key: "name", Value: "Sleep"}},
		))

		habits, err := repo.GetHabits(ctx, userID, "")
		require.NoError(t, err)
		require.Len(t, habits, 2)
		assert.Equal(t, "Walk", habits[0].Name)
		assert.Equal(t, "Sleep", habits[1].Name)
	})
}
