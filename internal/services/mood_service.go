package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/progress"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxMoodNotesLen  = 500
	defaultMoodLimit = 50
	maxMoodLimit     = 500
	defaultStatsDays = 7
	maxStatsDays     = 365
)

// MoodInput is a mood entry as submitted by the user. A nil Timestamp means now.
type MoodInput struct {
	Mood       models.Mood `json:"mood"`
	Intensity  int         `json:"intensity"`
	Notes      string      `json:"notes"`
	Activities []string    `json:"activities"`
	Timestamp  *time.Time  `json:"timestamp,omitempty"`
}

type MoodService struct {
	repo       MoodStore
	activities *ActivityService
	now        func() time.Time
	loc        *time.Location
}

func NewMoodService(repo MoodStore, activities *ActivityService, loc *time.Location) *MoodService {
	if loc == nil {
		loc = time.UTC
	}
	return &MoodService{
		repo:       repo,
		activities: activities,
		now:        time.Now,
		loc:        loc,
	}
}

func (in MoodInput) validate() error {
	var v validationErrors
	if _, ok := models.AllowedMoods[in.Mood]; !ok {
		v.add("unknown mood %q", in.Mood)
	}
	if in.Intensity < 1 || in.Intensity > 10 {
		v.add("intensity must be between 1 and 10")
	}
	if len([]rune(in.Notes)) > maxMoodNotesLen {
		v.add("notes must be at most %d characters", maxMoodNotesLen)
	}
	for _, a := range in.Activities {
		if _, ok := models.AllowedMoodActivities[a]; !ok {
			v.add("unknown activity %q", a)
		}
	}
	return v.err()
}

// CreateMood validates and stores a mood entry.
func (s *MoodService) CreateMood(ctx context.Context, userID primitive.ObjectID, in MoodInput) (*models.MoodEntry, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := in.validate(); err != nil {
		return nil, err
	}

	ts := s.now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	if ts.After(s.now().Add(time.Minute)) {
		return nil, fmt.Errorf("%w: timestamp cannot be in the future", ErrInvalidInput)
	}

	activities := slices.Clone(in.Activities)
	slices.Sort(activities)
	activities = slices.Compact(activities)

	entry, err := s.repo.CreateMood(ctx, &models.MoodEntry{
		UserID:     userID,
		Mood:       in.Mood,
		Intensity:  in.Intensity,
		Notes:      in.Notes,
		Activities: activities,
		Timestamp:  ts,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to create mood entry")
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	if s.activities != nil {
		msg := fmt.Sprintf("Feeling %s (%d/10)", entry.Mood, entry.Intensity)
		if err := s.activities.LogActivity(ctx, userID, models.ActivityMoodLogged, entry.ID, msg); err != nil {
			logger.Log.WithError(err).Warn("Failed to log mood activity")
		}
	}
	return entry, nil
}

// ListMoods returns the user's most recent entries, newest first.
func (s *MoodService) ListMoods(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultMoodLimit
	}
	limit = min(limit, maxMoodLimit)

	entries, err := s.repo.GetMoods(ctx, userID, time.Time{}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	return entries, nil
}

// DeleteMood deletes one of the user's entries.
func (s *MoodService) DeleteMood(ctx context.Context, userID primitive.ObjectID, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMood(ctx, objID, userID); err != nil {
		return storeErr("failed to delete mood", err)
	}
	return nil
}

// Stats summarises the entries of the last days calendar days, today included.
func (s *MoodService) Stats(ctx context.Context, userID primitive.ObjectID, days int) (*models.MoodStats, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		return nil, fmt.Errorf("%w: days must be at most %d", ErrInvalidInput, maxStatsDays)
	}

	since := progress.Day(s.now(), s.loc).AddDate(0, 0, -(days - 1))
	entries, err := s.repo.GetMoods(ctx, userID, since, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	return computeMoodStats(entries, days, s.loc), nil
}

func computeMoodStats(entries []models.MoodEntry, days int, loc *time.Location) *models.MoodStats {
	stats := &models.MoodStats{
		Days:   days,
		Total:  len(entries),
		ByMood: map[models.Mood]int{},
		PerDay: map[string]int{},
	}
	if len(entries) == 0 {
		return stats
	}

	intensity := 0
	for _, e := range entries {
		intensity += e.Intensity
		stats.ByMood[e.Mood]++
		stats.PerDay[e.Timestamp.In(loc).Format(time.DateOnly)]++
	}
	stats.AverageIntensity = float64(intensity) / float64(len(entries))

	best := 0
	for mood, n := range stats.ByMood {
		if n > best || (n == best && mood < stats.MostFrequent) {
			best, stats.MostFrequent = n, mood
		}
	}
	return stats
}
