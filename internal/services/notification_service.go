package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/progress"
	"github.com/Dias221467/Wellness_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

func (s *NotificationService) owned(ctx context.Context, userID, notifID primitive.ObjectID) error {
	notif, err := s.repo.GetNotificationByID(ctx, notifID)
	if err != nil {
		return storeErr("failed to get notification", err)
	}
	if notif.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// MarkNotificationAsRead sets the "read" status of the user's notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, userID, notifID primitive.ObjectID) error {
	if err := s.owned(ctx, userID, notifID); err != nil {
		return err
	}
	if err := s.repo.MarkAsRead(ctx, notifID); err != nil {
		return storeErr("failed to mark notification as read", err)
	}
	return nil
}

// DeleteNotification deletes one of the user's notifications
func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notifID primitive.ObjectID) error {
	if err := s.owned(ctx, userID, notifID); err != nil {
		return err
	}
	if err := s.repo.DeleteNotification(ctx, notifID); err != nil {
		return storeErr("failed to delete notification", err)
	}
	return nil
}

// NotifiedOn reports whether the user already got a notification of this type
// about target on the calendar day of day.
func (s *NotificationService) NotifiedOn(ctx context.Context, userID primitive.ObjectID, notifType string, target primitive.ObjectID, day time.Time) (bool, error) {
	latest, err := s.repo.GetLatestNotificationByType(ctx, userID, notifType, &target)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up notification: %w", err)
	}
	loc := day.Location()
	return progress.Day(latest.CreatedAt, loc).Equal(progress.Day(day, loc)), nil
}

func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	n, err := s.repo.DeleteExpiredNotifications(ctx)
	if err != nil {
		return err
	}
	logrus.WithField("deleted", n).Debug("Expired notifications removed")
	return nil
}
