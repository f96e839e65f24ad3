package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

var activityTypes = map[string]struct{}{
	models.ActivityHabitCreated:   {},
	models.ActivityHabitCompleted: {},
	models.ActivityHabitDeleted:   {},
	models.ActivityBadgeEarned:    {},
	models.ActivityMoodLogged:     {},
}

// ActivityService records the feed shown on the dashboard.
type ActivityService struct {
	repo ActivityStore
	now  func() time.Time
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo, now: time.Now}
}

// LogActivity appends an entry to the user's feed. Unknown kinds are rejected.
func (s *ActivityService) LogActivity(ctx context.Context, userID primitive.ObjectID, kind string, targetID primitive.ObjectID, message string) error {
	if _, ok := activityTypes[kind]; !ok {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, kind)
	}

	err := s.repo.CreateActivity(ctx, &models.Activity{
		UserID:    userID,
		Type:      kind,
		TargetID:  targetID,
		Message:   message,
		Timestamp: s.now(),
	})
	if err != nil {
		logrus.WithError(err).WithField("type", kind).Error("Failed to log activity in service")
		return fmt.Errorf("failed to log activity: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"type":    kind,
	}).Debug("Activity logged")
	return nil
}

// GetRecentActivities returns the user's latest activities, newest first. A
// non-positive limit uses the default; larger limits are capped.
func (s *ActivityService) GetRecentActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	limit = min(limit, maxActivityLimit)

	activities, err := s.repo.GetUserActivities(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	return activities, nil
}
