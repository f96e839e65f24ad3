package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/config"
	"github.com/Dias221467/Wellness_Tracker/internal/database"
	"github.com/Dias221467/Wellness_Tracker/internal/handlers"
	"github.com/Dias221467/Wellness_Tracker/internal/jobs"
	"github.com/Dias221467/Wellness_Tracker/internal/memstore"
	"github.com/Dias221467/Wellness_Tracker/internal/repository"
	"github.com/Dias221467/Wellness_Tracker/internal/scheduler"
	"github.com/Dias221467/Wellness_Tracker/internal/services"
	"github.com/Dias221467/Wellness_Tracker/pkg/email"
	"github.com/Dias221467/Wellness_Tracker/pkg/gemini"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// stores groups the persistence backends the services run on.
type stores struct {
	habits        services.HabitStore
	users         services.UserStore
	moods         services.MoodStore
	notifications services.NotificationStore
	activities    services.ActivityStore
	close         func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		return &stores{
			habits:        memstore.NewHabitStore(),
			users:         memstore.NewUserStore(),
			moods:         &memstore.MoodStore{},
			notifications: &memstore.NotificationStore{},
			activities:    &memstore.ActivityStore{},
			close:         func(context.Context) error { return nil },
		}, nil
	}

	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = db.Client().Disconnect(ctx)
		return nil, err
	}
	return &stores{
		habits:        repository.NewHabitRepository(db),
		users:         repository.NewUserRepository(db),
		moods:         repository.NewMoodRepository(db),
		notifications: repository.NewNotificationRepository(db),
		activities:    repository.NewActivityRepository(db),
		close:         db.Client().Disconnect,
	}, nil
}

func main() {
	// Load configuration from .env file and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Storage initialization failed")
	}

	// --- Services ---
	userService := services.NewUserService(st.users)
	notificationService := services.NewNotificationService(st.notifications)
	activityService := services.NewActivityService(st.activities)
	habitService := services.NewHabitService(st.habits, notificationService, activityService, services.WithLocation(cfg.Location))
	moodService := services.NewMoodService(st.moods, activityService, cfg.Location)
	dashboardService := services.NewDashboardService(userService, habitService, st.moods, activityService)

	var generator services.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Log.WithError(err).Warn("AI insights disabled")
		} else {
			generator = client
		}
	} else {
		logger.Log.Info("GEMINI_API_KEY not set, AI insights disabled")
	}
	insightService := services.NewInsightService(generator, userService, st.moods)

	// --- Background jobs ---
	var mailer jobs.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = email.NewSender(cfg.ResendAPIKey, cfg.NudgeFrom)
	}
	nudger := jobs.NewStreakNudger(habitService, notificationService, userService, mailer)

	cronRunner, err := scheduler.Start(scheduler.Jobs{
		Streaks:       habitService,
		Nudger:        nudger,
		Notifications: notificationService,
	}, cfg.NudgeSchedule, cfg.Location)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start scheduler")
	}

	// --- Handlers ---
	router := handlers.NewRouter(handlers.Handlers{
		Users:         handlers.NewUserHandler(userService, cfg),
		Habits:        handlers.NewHabitHandler(habitService),
		Moods:         handlers.NewMoodHandler(moodService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Insights:      handlers.NewInsightHandler(insightService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Activities:    handlers.NewActivityHandler(activityService),
	}, cfg.JWTSecret, userService)

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("HTTP shutdown failed")
	}
	<-cronRunner.Stop().Done()
	if err := st.close(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Failed to close storage")
	}
}
