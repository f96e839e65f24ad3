package jobs

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/services"
	"github.com/Dias221467/Wellness_Tracker/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mailer sends a single HTML email. *email.Sender satisfies it.
type Mailer interface {
	SendEmail(to, subject, html string) error
}

// StreakNudger warns users whose streaks end tonight.
type StreakNudger struct {
	HabitService        *services.HabitService
	NotificationService *services.NotificationService
	UserService         *services.UserService
	Mailer              Mailer // optional
}

// NewStreakNudger creates a new instance of StreakNudger. mailer may be nil, in
// which case only in-app notifications are created.
func NewStreakNudger(habits *services.HabitService, notifs *services.NotificationService, users *services.UserService, mailer Mailer) *StreakNudger {
	return &StreakNudger{
		HabitService:        habits,
		NotificationService: notifs,
		UserService:         users,
		Mailer:              mailer,
	}
}

// RunDailyScan notifies the owner of every at-risk habit at most once per day
// and, when a mailer is configured, sends each affected user one digest email.
func (n *StreakNudger) RunDailyScan(ctx context.Context) error {
	habits, err := n.HabitService.HabitsAtRisk(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch habits at risk: %w", err)
	}

	today := n.HabitService.Today()
	perUser := make(map[primitive.ObjectID][]string)

	for _, habit := range habits {
		sent, err := n.NotificationService.NotifiedOn(ctx, habit.UserID, models.NotificationStreakAtRisk, habit.ID, today)
		if err != nil {
			logrus.WithError(err).WithField("habitID", habit.ID.Hex()).Warn("Failed to check earlier nudges")
			continue
		}
		if sent {
			continue
		}

		err = n.NotificationService.CreateNotification(
			ctx,
			habit.UserID,
			models.NotificationStreakAtRisk,
			"Streak At Risk",
			fmt.Sprintf("Your %d-day streak for \"%s\" ends tonight. Log it today to keep it going.", habit.Streak, habit.Name),
			&habit.ID,
		)
		if err != nil {
			logrus.WithError(err).WithField("habitID", habit.ID.Hex()).Warn("Failed to create streak nudge")
			continue
		}
		perUser[habit.UserID] = append(perUser[habit.UserID], habit.Name)
	}

	if n.Mailer != nil {
		for userID, names := range perUser {
			n.sendDigest(ctx, userID, names)
		}
	}

	logrus.WithFields(logrus.Fields{"atRisk": len(habits), "users": len(perUser)}).Info("Streak nudge scan completed")
	return nil
}

func (n *StreakNudger) sendDigest(ctx context.Context, userID primitive.ObjectID, names []string) {
	user, err := n.UserService.GetUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Warn("Skipping nudge email")
		return
	}

	sort.Strings(names)
	body, err := email.RenderStreakNudge(user.Username, names)
	if err != nil {
		logrus.WithError(err).Error("Failed to render nudge email")
		return
	}
	if err := n.Mailer.SendEmail(user.Email, "Your streaks end tonight", body); err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Warn("Failed to send nudge email")
	}
}
