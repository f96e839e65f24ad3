package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 8
)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserStore
	cost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
		cost: bcrypt.DefaultCost,
	}
}

// RegisterUser validates the credentials, hashes the password and stores the user.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	logrus.WithField("email", email).Info("Registering new user")

	var v validationErrors
	if n := len([]rune(username)); n < minUsernameLen || n > maxUsernameLen {
		v.add("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if !emailRegex.MatchString(email) {
		v.add("invalid email format")
	}
	if len(password) < minPasswordLen {
		v.add("password must be at least %d characters", minPasswordLen)
	}
	if err := v.err(); err != nil {
		logrus.WithField("email", email).Warn("Invalid registration data")
		return nil, err
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashedPwd),
	})
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User registered successfully")
	return user, nil
}

// AuthenticateUser verifies the email and password and returns the user if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logrus.WithField("email", email).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("email", email).Warn("User not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("userID", id.Hex()).Warn("Failed to retrieve user")
		return nil, storeErr("failed to get user", err)
	}
	return user, nil
}

// UpdateProfile validates and stores the user's health profile.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile models.Profile) (*models.User, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, id, profile); err != nil {
		logrus.WithError(err).WithField("userID", id.Hex()).Error("Failed to update profile in service")
		return nil, storeErr("failed to update profile", err)
	}
	return s.GetUser(ctx, id)
}

// UpdateLastActive records that the user made a request.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}

// validateProfile checks the ranges accepted by the profile form. Zero values
// mean "not provided" and are not range-checked.
func validateProfile(p models.Profile) error {
	var v validationErrors
	if p.Age != 0 && (p.Age < 13 || p.Age > 120) {
		v.add("age must be between 13 and 120")
	}
	if p.Weight != 0 && (p.Weight < 30 || p.Weight > 300) {
		v.add("weight must be between 30 and 300 kg")
	}
	if p.Height != 0 && (p.Height < 100 || p.Height > 250) {
		v.add("height must be between 100 and 250 cm")
	}
	if p.StressLevel != 0 && (p.StressLevel < 1 || p.StressLevel > 10) {
		v.add("stress level must be between 1 and 10")
	}
	if p.SleepHours != 0 && (p.SleepHours < 3 || p.SleepHours > 12) {
		v.add("sleep hours must be between 3 and 12")
	}
	if p.ActivityLevel != "" {
		if _, ok := models.AllowedActivityLevels[p.ActivityLevel]; !ok {
			v.add("unknown activity level %q", p.ActivityLevel)
		}
	}
	return v.err()
}
