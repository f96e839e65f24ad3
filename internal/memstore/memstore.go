// Package memstore keeps every collection in process memory. It backs
// STORAGE=memory for local runs and the service and handler tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cloneHabit(h *models.Habit) *models.Habit {
	c := *h
	c.CompletedDates = slices.Clone(h.CompletedDates)
	c.Badges = slices.Clone(h.Badges)
	return &c
}

// HabitStore is an in-memory HabitStore with version checks like the Mongo repository.
type HabitStore struct {
	mu     sync.Mutex
	habits map[primitive.ObjectID]*models.Habit
	order  []primitive.ObjectID

	conflicts int
}

// NewHabitStore creates an empty HabitStore.
func NewHabitStore() *HabitStore {
	return &HabitStore{habits: map[primitive.ObjectID]*models.Habit{}}
}

// CreateHabit inserts a new habit with empty progress
func (m *HabitStore) CreateHabit(_ context.Context, habit *models.Habit) (*models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	habit.ID = primitive.NewObjectID()
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt
	if habit.CompletedDates == nil {
		habit.CompletedDates = []models.CompletionEvent{}
	}
	if habit.Badges == nil {
		habit.Badges = []models.Badge{}
	}
	m.habits[habit.ID] = cloneHabit(habit)
	m.order = append(m.order, habit.ID)
	return habit, nil
}

// GetHabitByID fetches a habit by its ID
func (m *HabitStore) GetHabitByID(_ context.Context, id primitive.ObjectID) (*models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneHabit(h), nil
}

// GetHabits returns a user's habits in creation order, optionally of one kind
func (m *HabitStore) GetHabits(_ context.Context, userID primitive.ObjectID, kind models.HabitKind) ([]models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Habit{}
	for _, id := range m.order {
		h, ok := m.habits[id]
		if !ok || h.UserID != userID || (kind != "" && h.Type != kind) {
			continue
		}
		out = append(out, *cloneHabit(h))
	}
	return out, nil
}

// ForEachHabit calls fn with a copy of every habit
func (m *HabitStore) ForEachHabit(ctx context.Context, fn func(*models.Habit) error) error {
	m.mu.Lock()
	var all []*models.Habit
	for _, id := range m.order {
		if h, ok := m.habits[id]; ok {
			all = append(all, cloneHabit(h))
		}
	}
	m.mu.Unlock()

	for _, h := range all {
		if err := fn(h); err != nil {
			return err
		}
	}
	return nil
}

// UpdateHabitDetails updates name, target, unit and frequency
func (m *HabitStore) UpdateHabitDetails(_ context.Context, habit *models.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[habit.ID]
	if !ok {
		return repository.ErrNotFound
	}
	h.Name, h.Target, h.Unit, h.Frequency = habit.Name, habit.Target, habit.Unit, habit.Frequency
	return nil
}

// SaveProgress stores completions, streaks and badges if the version still matches
func (m *HabitStore) SaveProgress(_ context.Context, habit *models.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[habit.ID]
	if !ok {
		return repository.ErrVersionConflict
	}
	if m.conflicts > 0 {
		m.conflicts--
		h.Version++
	}
	if h.Version != habit.Version {
		return repository.ErrVersionConflict
	}
	habit.Version++
	m.habits[habit.ID] = cloneHabit(habit)
	return nil
}

// UpdateStreaks sets the cached streaks if the version still matches
func (m *HabitStore) UpdateStreaks(_ context.Context, id primitive.ObjectID, version int64, streak, longest int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok || h.Version != version {
		return repository.ErrVersionConflict
	}
	h.Streak, h.LongestStreak = streak, longest
	h.Version++
	return nil
}

// DeleteHabit removes a habit
func (m *HabitStore) DeleteHabit(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.habits, id)
	return nil
}

// InjectConflicts makes the next n SaveProgress calls fail as if another writer
// had committed first.
func (m *HabitStore) InjectConflicts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts = n
}

// Habit returns a copy of the stored habit, or nil.
func (m *HabitStore) Habit(id primitive.ObjectID) *models.Habit {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok {
		return nil
	}
	return cloneHabit(h)
}

// UserStore is an in-memory UserStore.
type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: map[primitive.ObjectID]*models.User{}}
}

// CreateUser inserts a new user
func (m *UserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	c := *user
	m.users[user.ID] = &c
	return user, nil
}

func (m *UserStore) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetUserByEmail fetches a user by email
func (m *UserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

// GetUserByUsername fetches a user by username
func (m *UserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

// GetUserByID fetches a user by its ID
func (m *UserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

// UpdateProfile replaces a user's profile
func (m *UserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, profile models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Profile = profile
	u.UpdatedAt = time.Now()
	return nil
}

// UpdateLastActive stamps the user's last activity time
func (m *UserStore) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastActiveAt = time.Now()
	}
	return nil
}

// MoodStore is an in-memory MoodStore. The zero value is ready to use.
type MoodStore struct {
	mu      sync.Mutex
	entries []models.MoodEntry
}

// CreateMood inserts a mood entry
func (m *MoodStore) CreateMood(_ context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	m.entries = append(m.entries, *entry)
	return entry, nil
}

// GetMoods returns a user's entries newest first
func (m *MoodStore) GetMoods(_ context.Context, userID primitive.ObjectID, since time.Time, limit int) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.MoodEntry{}
	for _, e := range m.entries {
		if e.UserID == userID && (since.IsZero() || !e.Timestamp.Before(since)) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteMood removes an entry only if it belongs to userID
func (m *MoodStore) DeleteMood(_ context.Context, id, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			m.entries = slices.Delete(m.entries, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}

// NotificationStore is an in-memory NotificationStore. The zero value is ready to use.
type NotificationStore struct {
	mu    sync.Mutex
	items []models.Notification
}

// CreateNotification inserts a new notification
func (m *NotificationStore) CreateNotification(_ context.Context, notif *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notif.ID = primitive.NewObjectID()
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	notif.ExpiresAt = notif.CreatedAt.Add(repository.NotificationTTL)
	m.items = append(m.items, *notif)
	return nil
}

// GetNotificationByID fetches one notification
func (m *NotificationStore) GetNotificationByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.ID == id {
			c := n
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetUserNotifications returns all unexpired notifications for a user
func (m *NotificationStore) GetUserNotifications(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	out := []models.Notification{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if n := m.items[i]; n.UserID == userID && n.ExpiresAt.After(now) {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkAsRead sets notification's Read to true
func (m *NotificationStore) MarkAsRead(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

// DeleteNotification deletes a notification
func (m *NotificationStore) DeleteNotification(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id {
			m.items = slices.Delete(m.items, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}

// GetLatestNotificationByType returns the newest notification of a type for a user about target
func (m *NotificationStore) GetLatestNotificationByType(_ context.Context, userID primitive.ObjectID, notifType string, target *primitive.ObjectID) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Notification
	for i := range m.items {
		n := m.items[i]
		if n.UserID != userID || n.Type != notifType {
			continue
		}
		if target != nil && (n.TargetID == nil || *n.TargetID != *target) {
			continue
		}
		if latest == nil || n.CreatedAt.After(latest.CreatedAt) {
			latest = &n
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

// DeleteExpiredNotifications removes notifications past their expiry
func (m *NotificationStore) DeleteExpiredNotifications(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	before := len(m.items)
	m.items = slices.DeleteFunc(m.items, func(n models.Notification) bool { return !n.ExpiresAt.After(now) })
	return int64(before - len(m.items)), nil
}

// OfType returns every stored notification of the given type.
func (m *NotificationStore) OfType(notifType string) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.items {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

// ActivityStore is an in-memory ActivityStore. The zero value is ready to use.
type ActivityStore struct {
	mu    sync.Mutex
	items []models.Activity
}

// CreateActivity appends an activity
func (m *ActivityStore) CreateActivity(_ context.Context, activity *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *activity)
	return nil
}

// GetUserActivities returns at most limit entries for the user, newest first
func (m *ActivityStore) GetUserActivities(_ context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Activity{}
	for i := len(m.items) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

// All returns every stored activity, oldest first.
func (m *ActivityStore) All() []models.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}
