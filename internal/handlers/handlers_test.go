package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/Wellness_Tracker/internal/config"
	"github.com/Dias221467/Wellness_Tracker/internal/memstore"
	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/services"
)

const testSecret = "test-secret"

type testAPI struct {
	router        http.Handler
	notifications *memstore.NotificationStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret, TokenExpiry: time.Hour, Location: time.UTC}

	habitStore := memstore.NewHabitStore()
	userStore := memstore.NewUserStore()
	moodStore := &memstore.MoodStore{}
	notifStore := &memstore.NotificationStore{}
	activityStore := &memstore.ActivityStore{}

	userSvc := services.NewUserService(userStore)
	notifSvc := services.NewNotificationService(notifStore)
	activitySvc := services.NewActivityService(activityStore)
	habitSvc := services.NewHabitService(habitStore, notifSvc, activitySvc, services.WithLocation(cfg.Location))
	moodSvc := services.NewMoodService(moodStore, activitySvc, cfg.Location)

	router := NewRouter(Handlers{
		Users:         NewUserHandler(userSvc, cfg),
		Habits:        NewHabitHandler(habitSvc),
		Moods:         NewMoodHandler(moodSvc),
		Dashboard:     NewDashboardHandler(services.NewDashboardService(userSvc, habitSvc, moodStore, activitySvc)),
		Insights:      NewInsightHandler(services.NewInsightService(nil, userSvc, moodStore)),
		Notifications: NewNotificationHandler(notifSvc),
		Activities:    NewActivityHandler(activitySvc),
	}, cfg.JWTSecret, userSvc)

	return &testAPI{router: router, notifications: notifStore}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) register(t *testing.T, username string) string {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) createHabit(t *testing.T, token string) models.Habit {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/habits", token, services.HabitInput{
		Name: "Meditate", Type: models.HabitMeditation, Target: 10, Unit: "minutes",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var habit models.Habit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &habit))
	return habit
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rr := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")

	rr := api.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ana2", "email": "ana@example.com", "password": "correct horse",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "correct horse",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"ana"`)

	rr = api.do(t, http.MethodGet, "/api/auth/verify", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfile(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")

	rr := api.do(t, http.MethodPut, "/api/users/profile", token, models.Profile{Age: 29, SleepHours: 7})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, 29, user.Profile.Age)
	assert.NotContains(t, rr.Body.String(), "hashed_password")

	rr = api.do(t, http.MethodPut, "/api/users/profile", token, models.Profile{Age: 200})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHabitsRequireAuth(t *testing.T) {
	api := newTestAPI(t)
	rr := api.do(t, http.MethodGet, "/api/habits", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHabitLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")
	habit := api.createHabit(t, token)
	path := "/api/habits/" + habit.ID.Hex()

	rr := api.do(t, http.MethodPost, path+"/progress", token, services.CompletionInput{Value: amount(12)})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var res struct {
		Habit     models.Habit   `json:"habit"`
		Streak    int            `json:"streak"`
		NewBadges []models.Badge `json:"new_badges"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Streak)
	assert.NotNil(t, res.NewBadges)
	assert.Empty(t, res.NewBadges)
	assert.Len(t, res.Habit.CompletedDates, 1)

	// An explicit zero is a completion.
	rr = api.do(t, http.MethodPost, path+"/progress", token, map[string]any{"value": 0})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/habits?type=meditation", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var habits []models.Habit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &habits))
	require.Len(t, habits, 1)
	assert.Equal(t, 1, habits[0].Streak)

	rr = api.do(t, http.MethodGet, path+"/summary", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var summary models.HabitSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalCompletions)
	assert.Equal(t, 1, summary.DaysCompleted)

	rr = api.do(t, http.MethodGet, path+"/badges", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = api.do(t, http.MethodPut, path, token, services.HabitInput{Name: "Meditate longer", Target: 20, Unit: "minutes"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Meditate longer")

	rr = api.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = api.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHabitErrors(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register(t, "ana")
	other := api.register(t, "ben")
	habit := api.createHabit(t, owner)
	path := "/api/habits/" + habit.ID.Hex()

	rr := api.do(t, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = api.do(t, http.MethodPost, path+"/progress", other, services.CompletionInput{Value: amount(1)})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = api.do(t, http.MethodPost, path+"/progress", owner, services.CompletionInput{Value: amount(-3)})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/habits/not-an-id", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/habits", owner, services.HabitInput{Name: "x", Type: "juggling", Target: 1, Unit: "u"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogProgress_RequiresValue(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")
	habit := api.createHabit(t, token)
	path := "/api/habits/" + habit.ID.Hex() + "/progress"

	rr := api.do(t, http.MethodPost, path, token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "value is required")

	rr = api.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/habits/"+habit.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var stored models.Habit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stored))
	assert.Empty(t, stored.CompletedDates)
}

func TestMoods(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")

	rr := api.do(t, http.MethodPost, "/api/moods", token, services.MoodInput{
		Mood: models.MoodHappy, Intensity: 8, Activities: []string{"social"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var entry models.MoodEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))

	rr = api.do(t, http.MethodGet, "/api/moods/stats?days=7", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats models.MoodStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, models.MoodHappy, stats.MostFrequent)

	rr = api.do(t, http.MethodGet, "/api/moods?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodDelete, "/api/moods/"+entry.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/moods", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestDashboard(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")
	habit := api.createHabit(t, token)
	api.do(t, http.MethodPost, "/api/habits/"+habit.ID.Hex()+"/progress", token, services.CompletionInput{Value: amount(5)})

	rr := api.do(t, http.MethodGet, "/api/dashboard/data", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var dash models.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dash))
	assert.Equal(t, "ana", dash.Username)
	require.Len(t, dash.HabitProgress, 1)
	assert.Equal(t, 50.0, dash.HabitProgress[0].Progress)

	rr = api.do(t, http.MethodGet, "/api/activities?limit=1", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var feed []models.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, models.ActivityHabitCompleted, feed[0].Type)
}

func TestInsightsUnavailable(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")

	rr := api.do(t, http.MethodGet, "/api/ai/recommendations", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/ai/insights", token, map[string]string{"userInput": "sleep tips"})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNotifications(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "ana")
	otherToken := api.register(t, "ben")
	habit := api.createHabit(t, token)

	start := time.Now().AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		rr := api.do(t, http.MethodPost, "/api/habits/"+habit.ID.Hex()+"/progress", token, services.CompletionInput{Date: &d, Value: amount(1)})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := api.do(t, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var notifs []models.Notification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notifs))
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationBadgeEarned, notifs[0].Type)

	path := "/api/notifications/" + notifs[0].ID.Hex()
	rr = api.do(t, http.MethodPost, path+"/read", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = api.do(t, http.MethodPost, path+"/read", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, api.notifications.OfType(models.NotificationBadgeEarned)[0].Read)

	rr = api.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func amount(v float64) *float64 { return &v }
