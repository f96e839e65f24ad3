package handlers

import (
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/pkg/middleware"
	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Users         *UserHandler
	Habits        *HabitHandler
	Moods         *MoodHandler
	Dashboard     *DashboardHandler
	Insights      *InsightHandler
	Notifications *NotificationHandler
	Activities    *ActivityHandler
}

// NewRouter registers the public and authenticated routes.
func NewRouter(h Handlers, jwtSecret string, lastActive middleware.LastActiveUpdater) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.MetricsMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Public auth routes
	router.HandleFunc("/api/auth/register", h.Users.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Users.LoginUserHandler).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(jwtSecret))
	if lastActive != nil {
		api.Use(middleware.UpdateLastActiveMiddleware(lastActive))
	}

	api.HandleFunc("/auth/verify", h.Users.VerifyHandler).Methods("GET")
	api.HandleFunc("/users/profile", h.Users.GetProfileHandler).Methods("GET")
	api.HandleFunc("/users/profile", h.Users.UpdateProfileHandler).Methods("PUT")

	// Habit routes
	api.HandleFunc("/habits", h.Habits.CreateHabitHandler).Methods("POST")
	api.HandleFunc("/habits", h.Habits.GetHabitsHandler).Methods("GET")
	api.HandleFunc("/habits/{id}", h.Habits.GetHabitHandler).Methods("GET")
	api.HandleFunc("/habits/{id}", h.Habits.UpdateHabitHandler).Methods("PUT")
	api.HandleFunc("/habits/{id}", h.Habits.DeleteHabitHandler).Methods("DELETE")
	api.HandleFunc("/habits/{id}/progress", h.Habits.LogProgressHandler).Methods("POST")
	api.HandleFunc("/habits/{id}/badges", h.Habits.GetBadgesHandler).Methods("GET")
	api.HandleFunc("/habits/{id}/summary", h.Habits.GetSummaryHandler).Methods("GET")

	// Mood routes
	api.HandleFunc("/moods", h.Moods.CreateMoodHandler).Methods("POST")
	api.HandleFunc("/moods", h.Moods.GetMoodsHandler).Methods("GET")
	api.HandleFunc("/moods/stats", h.Moods.GetMoodStatsHandler).Methods("GET")
	api.HandleFunc("/moods/{id}", h.Moods.DeleteMoodHandler).Methods("DELETE")

	api.HandleFunc("/dashboard/data", h.Dashboard.GetDashboardHandler).Methods("GET")
	api.HandleFunc("/activities", h.Activities.GetActivitiesHandler).Methods("GET")

	// AI routes
	api.HandleFunc("/ai/recommendations", h.Insights.RecommendationsHandler).Methods("GET")
	api.HandleFunc("/ai/mood-analysis", h.Insights.MoodAnalysisHandler).Methods("GET")
	api.HandleFunc("/ai/insights", h.Insights.InsightsHandler).Methods("POST")

	// Notification routes
	api.HandleFunc("/notifications", h.Notifications.GetUserNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", h.Notifications.MarkAsReadHandler).Methods("POST")
	api.HandleFunc("/notifications/{id}", h.Notifications.DeleteNotificationHandler).Methods("DELETE")

	return router
}
