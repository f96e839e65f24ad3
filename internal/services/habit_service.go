package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/progress"
	"github.com/Dias221467/Wellness_Tracker/internal/repository"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxHabitNameLen       = 100
	maxCompletionAttempts = 3
)

// HabitInput carries the user-editable fields of a habit.
type HabitInput struct {
	Name      string           `json:"name"`
	Type      models.HabitKind `json:"type"`
	Target    float64          `json:"target"`
	Unit      string           `json:"unit"`
	Frequency models.Frequency `json:"frequency"`
}

// CompletionInput is one progress log. A nil Date means now. Value is required
// and may be zero.
type CompletionInput struct {
	Date  *time.Time `json:"date,omitempty"`
	Value *float64   `json:"value"`
}

// CompletionResult is what a successful log returns to the caller.
type CompletionResult struct {
	Habit     *models.Habit  `json:"habit"`
	Streak    int            `json:"streak"`
	NewBadges []models.Badge `json:"new_badges"`
}

// HabitService encapsulates the business logic for habits and their progress.
type HabitService struct {
	repo          HabitStore
	notifications *NotificationService
	activities    *ActivityService
	now           func() time.Time
	loc           *time.Location
}

type HabitOption func(*HabitService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) HabitOption {
	return func(s *HabitService) { s.now = now }
}

// WithLocation sets the time zone calendar days are computed in.
func WithLocation(loc *time.Location) HabitOption {
	return func(s *HabitService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(repo HabitStore, notifications *NotificationService, activities *ActivityService, opts ...HabitOption) *HabitService {
	s := &HabitService{
		repo:          repo,
		notifications: notifications,
		activities:    activities,
		now:           time.Now,
		loc:           time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current instant in the configured location.
func (s *HabitService) Today() time.Time {
	return s.now().In(s.loc)
}

func (in *HabitInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Frequency == "" {
		in.Frequency = models.FrequencyDaily
	}
}

func (in HabitInput) validate(requireKind bool) error {
	var v validationErrors
	if in.Name == "" {
		v.add("name is required")
	} else if len([]rune(in.Name)) > maxHabitNameLen {
		v.add("name must be at most %d characters", maxHabitNameLen)
	}
	if requireKind || in.Type != "" {
		if _, ok := models.AllowedHabitKinds[in.Type]; !ok {
			v.add("unknown habit type %q", in.Type)
		}
	}
	if !(in.Target > 0) || math.IsInf(in.Target, 0) {
		v.add("target must be greater than 0")
	}
	if in.Unit == "" {
		v.add("unit is required")
	}
	if in.Frequency != models.FrequencyDaily && in.Frequency != models.FrequencyWeekly {
		v.add("unknown frequency %q", in.Frequency)
	}
	return v.err()
}

func parseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrInvalidInput, id)
	}
	return objID, nil
}

// CreateHabit validates the input and stores a habit with empty progress.
func (s *HabitService) CreateHabit(ctx context.Context, userID primitive.ObjectID, in HabitInput) (*models.Habit, error) {
	in.normalize()
	if err := in.validate(true); err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Warn("Invalid habit input")
		return nil, err
	}

	habit, err := s.repo.CreateHabit(ctx, &models.Habit{
		UserID:    userID,
		Name:      in.Name,
		Type:      in.Type,
		Target:    in.Target,
		Unit:      in.Unit,
		Frequency: in.Frequency,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	s.logActivity(ctx, habit, models.ActivityHabitCreated, fmt.Sprintf("Started tracking %q", habit.Name))
	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created in service layer")
	return habit, nil
}

// ownedHabit loads a habit and checks that userID owns it.
func (s *HabitService) ownedHabit(ctx context.Context, userID primitive.ObjectID, id string) (*models.Habit, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	habit, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, storeErr("failed to get habit", err)
	}
	if habit.UserID != userID {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": id,
			"user_id":  userID.Hex(),
		}).Warn("Access to foreign habit denied")
		return nil, ErrForbidden
	}
	return habit, nil
}

// refresh recomputes the cached streak for display. Nothing is written.
func (s *HabitService) refresh(habit *models.Habit) {
	habit.Streak = progress.CurrentStreak(habit.CompletedDates, s.Today())
}

// GetHabit returns one of the user's habits.
func (s *HabitService) GetHabit(ctx context.Context, userID primitive.ObjectID, id string) (*models.Habit, error) {
	habit, err := s.ownedHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.refresh(habit)
	return habit, nil
}

// ListHabits returns the user's habits, optionally of a single kind.
func (s *HabitService) ListHabits(ctx context.Context, userID primitive.ObjectID, kind models.HabitKind) ([]models.Habit, error) {
	if kind != "" {
		if _, ok := models.AllowedHabitKinds[kind]; !ok {
			return nil, fmt.Errorf("%w: unknown habit type %q", ErrInvalidInput, kind)
		}
	}
	habits, err := s.repo.GetHabits(ctx, userID, kind)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id": userID.Hex(),
			"type":    kind,
		}).WithError(err).Error("Failed to get habits in service")
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	for i := range habits {
		s.refresh(&habits[i])
	}
	return habits, nil
}

// UpdateHabit edits name, target, unit and frequency. Progress is untouched.
func (s *HabitService) UpdateHabit(ctx context.Context, userID primitive.ObjectID, id string, in HabitInput) (*models.Habit, error) {
	in.normalize()
	if err := in.validate(false); err != nil {
		return nil, err
	}
	habit, err := s.ownedHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	habit.Name = in.Name
	habit.Target = in.Target
	habit.Unit = in.Unit
	habit.Frequency = in.Frequency
	if err := s.repo.UpdateHabitDetails(ctx, habit); err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to update habit")
		return nil, storeErr("failed to update habit", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit updated successfully in service layer")
	s.refresh(habit)
	return habit, nil
}

// DeleteHabit removes the habit together with its completions and badges.
func (s *HabitService) DeleteHabit(ctx context.Context, userID primitive.ObjectID, id string) error {
	habit, err := s.ownedHabit(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteHabit(ctx, habit.ID); err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to delete habit")
		return storeErr("failed to delete habit", err)
	}

	s.logActivity(ctx, habit, models.ActivityHabitDeleted, fmt.Sprintf("Stopped tracking %q", habit.Name))
	logger.Log.WithField("habit_id", id).Info("Habit deleted successfully in service layer")
	return nil
}

func (s *HabitService) completionEvent(in CompletionInput) (models.CompletionEvent, error) {
	now := s.Today()
	date := now
	if in.Date != nil {
		date = in.Date.In(s.loc)
	}

	var v validationErrors
	switch {
	case in.Value == nil:
		v.add("value is required")
	case *in.Value < 0 || math.IsNaN(*in.Value) || math.IsInf(*in.Value, 0):
		v.add("value must be a non-negative number")
	}
	if progress.Day(date, s.loc).After(progress.Day(now, s.loc)) {
		v.add("date cannot be in the future")
	}
	if err := v.err(); err != nil {
		return models.CompletionEvent{}, err
	}
	return models.CompletionEvent{Date: date, Value: *in.Value}, nil
}

// applyCompletion appends the event, recomputes the cached streaks and awards
// badges. It returns the badges earned by this event.
func (s *HabitService) applyCompletion(habit *models.Habit, event models.CompletionEvent, now time.Time) []models.Badge {
	habit.CompletedDates = append(habit.CompletedDates, event)
	habit.Streak = progress.CurrentStreak(habit.CompletedDates, now)
	habit.LongestStreak = max(habit.LongestStreak, progress.LongestStreak(habit.CompletedDates, s.loc))

	earned := progress.EvaluateBadges(habit.Streak, len(habit.CompletedDates), habit.BadgeNames(), now)
	habit.Badges = append(habit.Badges, earned...)
	return earned
}

// LogCompletion records progress on a habit and returns the new streak and any
// badges it earned. The habit is re-read and the update retried when another
// writer gets there first.
func (s *HabitService) LogCompletion(ctx context.Context, userID primitive.ObjectID, id string, in CompletionInput) (*CompletionResult, error) {
	event, err := s.completionEvent(in)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCompletionAttempts; attempt++ {
		habit, err := s.ownedHabit(ctx, userID, id)
		if err != nil {
			return nil, err
		}

		now := s.Today()
		earned := s.applyCompletion(habit, event, now)

		err = s.repo.SaveProgress(ctx, habit)
		if err == nil {
			s.afterCompletion(ctx, habit, earned)
			if earned == nil {
				earned = []models.Badge{}
			}
			return &CompletionResult{Habit: habit, Streak: habit.Streak, NewBadges: earned}, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to save habit progress")
			return nil, fmt.Errorf("failed to log completion: %w", err)
		}

		completionConflictsTotal.Inc()
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": id,
			"attempt":  attempt,
		}).Warn("Habit changed concurrently, retrying completion")
	}
	return nil, fmt.Errorf("habit %s: %w", id, ErrConflict)
}

func (s *HabitService) afterCompletion(ctx context.Context, habit *models.Habit, earned []models.Badge) {
	habitCompletionsTotal.WithLabelValues(string(habit.Type)).Inc()
	s.logActivity(ctx, habit, models.ActivityHabitCompleted,
		fmt.Sprintf("Logged %q, streak is now %d", habit.Name, habit.Streak))

	for _, badge := range earned {
		badgesAwardedTotal.WithLabelValues(string(badge.Name)).Inc()
		s.logActivity(ctx, habit, models.ActivityBadgeEarned,
			fmt.Sprintf("Earned %s on %q", badge.Name, habit.Name))

		if s.notifications == nil {
			continue
		}
		err := s.notifications.CreateNotification(ctx, habit.UserID, models.NotificationBadgeEarned,
			fmt.Sprintf("%s %s", badge.Icon, badge.Name),
			fmt.Sprintf("%s on \"%s\"!", badge.Description, habit.Name),
			&habit.ID,
		)
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to send badge notification")
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id":   habit.ID.Hex(),
		"streak":     habit.Streak,
		"new_badges": len(earned),
	}).Info("Completion logged")
}

func (s *HabitService) logActivity(ctx context.Context, habit *models.Habit, kind, message string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.LogActivity(ctx, habit.UserID, kind, habit.ID, message); err != nil {
		logger.Log.WithError(err).Warn("Failed to log habit activity")
	}
}

// GetBadges returns the badges a habit has earned, oldest first.
func (s *HabitService) GetBadges(ctx context.Context, userID primitive.ObjectID, id string) ([]models.Badge, error) {
	habit, err := s.ownedHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if habit.Badges == nil {
		return []models.Badge{}, nil
	}
	return habit.Badges, nil
}

// GetSummary returns streak and completion statistics for one habit.
func (s *HabitService) GetSummary(ctx context.Context, userID primitive.ObjectID, id string) (*models.HabitSummary, error) {
	habit, err := s.ownedHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	summary := s.Summary(habit)
	return &summary, nil
}

// Summary computes statistics for a habit as of today.
func (s *HabitService) Summary(habit *models.Habit) models.HabitSummary {
	today := s.Today()
	days := progress.DistinctDays(habit.CompletedDates, s.loc)

	summary := models.HabitSummary{
		HabitID:          habit.ID.Hex(),
		Name:             habit.Name,
		CurrentStreak:    progress.CurrentStreak(habit.CompletedDates, today),
		LongestStreak:    max(habit.LongestStreak, progress.LongestStreak(habit.CompletedDates, s.loc)),
		TotalCompletions: len(habit.CompletedDates),
		DaysCompleted:    len(days),
		Badges:           len(habit.Badges),
	}
	if len(days) > 0 {
		last, first := days[0], days[len(days)-1]
		summary.LastLogged = &last
		summary.FirstLogged = &first
	}
	for _, d := range days {
		if d.Year() == today.Year() && d.Month() == today.Month() {
			summary.ThisMonth++
		}
	}
	return summary
}

// TodayValue sums the values logged for the habit today.
func (s *HabitService) TodayValue(habit *models.Habit) float64 {
	today := progress.Day(s.Today(), s.loc)
	var total float64
	for _, e := range habit.CompletedDates {
		if progress.Day(e.Date, s.loc).Equal(today) {
			total += e.Value
		}
	}
	return total
}

// RefreshStreaks recomputes the cached streaks of every habit so broken streaks
// read 0 without waiting for the next log. It returns how many habits changed.
func (s *HabitService) RefreshStreaks(ctx context.Context) (int, error) {
	today := s.Today()
	updated := 0
	err := s.repo.ForEachHabit(ctx, func(habit *models.Habit) error {
		streak := progress.CurrentStreak(habit.CompletedDates, today)
		longest := max(habit.LongestStreak, progress.LongestStreak(habit.CompletedDates, s.loc))
		if streak == habit.Streak && longest == habit.LongestStreak {
			return nil
		}

		err := s.repo.UpdateStreaks(ctx, habit.ID, habit.Version, streak, longest)
		if errors.Is(err, repository.ErrVersionConflict) {
			// A completion landed in between and already recomputed.
			return nil
		}
		if err != nil {
			return fmt.Errorf("habit %s: %w", habit.ID.Hex(), err)
		}
		updated++
		return nil
	})
	if err != nil {
		logger.Log.WithError(err).Error("Streak refresh failed")
		return updated, fmt.Errorf("failed to refresh streaks: %w", err)
	}

	logger.Log.WithField("updated", updated).Info("Streaks refreshed")
	return updated, nil
}

// HabitsAtRisk returns the habits whose streak ends tonight unless they are
// logged today.
func (s *HabitService) HabitsAtRisk(ctx context.Context) ([]models.Habit, error) {
	today := s.Today()
	var atRisk []models.Habit
	err := s.repo.ForEachHabit(ctx, func(habit *models.Habit) error {
		if progress.AtRisk(habit.CompletedDates, today) {
			habit.Streak = progress.CurrentStreak(habit.CompletedDates, today)
			atRisk = append(atRisk, *habit)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan habits: %w", err)
	}
	return atRisk, nil
}
