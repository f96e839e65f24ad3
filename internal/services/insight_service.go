package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxInsightInputLen = 2000
	moodAnalysisWindow = 30 * 24 * time.Hour
	moodAnalysisLimit  = 100
)

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// InsightService asks a generative model for personalised advice.
type InsightService struct {
	gen   TextGenerator
	users *UserService
	moods MoodStore
}

// NewInsightService creates the service. A nil generator makes every call fail
// with ErrInsightsUnavailable.
func NewInsightService(gen TextGenerator, users *UserService, moods MoodStore) *InsightService {
	return &InsightService{gen: gen, users: users, moods: moods}
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	if s.gen == nil {
		return "", ErrInsightsUnavailable
	}
	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		logger.Log.WithError(err).Error("Text generation failed")
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}
	return text, nil
}

func recommendationPrompt(p models.Profile) string {
	return fmt.Sprintf(`As a wellness AI advisor, provide personalized health recommendations based on the following user profile:
Age: %d
Weight: %gkg
Height: %gcm
Diet: %s
Stress Level: %d/10
Current Mood: %s
Activity Level: %s
Sleep Hours: %g
Health Goals: %s

Please provide specific, actionable recommendations for:
1. Exercise routine
2. Diet suggestions (considering their dietary preference)
3. Stress management techniques
4. Sleep optimization

Format the response in JSON with the following structure:
{
  "exercise": "recommendation",
  "diet": "recommendation",
  "mindfulness": "recommendation",
  "sleep": "recommendation"
}`,
		p.Age, p.Weight, p.Height, p.DietaryPreference, p.StressLevel, p.Mood,
		p.ActivityLevel, p.SleepHours, strings.Join(p.HealthGoals, ", "))
}

// stripFences removes a surrounding markdown code fence, which models often add
// around JSON.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

// Recommendations returns exercise, diet, mindfulness and sleep advice for the
// user's profile.
func (s *InsightService) Recommendations(ctx context.Context, userID primitive.ObjectID) (*models.Recommendations, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, recommendationPrompt(user.Profile))
	if err != nil {
		return nil, err
	}

	var recs models.Recommendations
	if err := json.Unmarshal([]byte(stripFences(text)), &recs); err != nil {
		logger.Log.WithError(err).Warn("Model returned malformed recommendations")
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return &recs, nil
}

type moodSample struct {
	Mood       models.Mood `json:"mood"`
	Intensity  int         `json:"intensity"`
	Notes      string      `json:"notes,omitempty"`
	Activities []string    `json:"activities,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// MoodAnalysis asks for patterns, triggers and suggestions in the user's recent
// moods. JSON answers are returned as-is; anything else is wrapped as
// {"analysis": text}.
func (s *InsightService) MoodAnalysis(ctx context.Context, userID primitive.ObjectID) (json.RawMessage, error) {
	entries, err := s.moods.GetMoods(ctx, userID, time.Now().Add(-moodAnalysisWindow), moodAnalysisLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no mood entries to analyse", ErrInvalidInput)
	}

	samples := make([]moodSample, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, moodSample{e.Mood, e.Intensity, e.Notes, e.Activities, e.Timestamp})
	}
	data, err := json.Marshal(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to encode moods: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze the following mood data and provide insights:
%s

Please provide:
1. Pattern recognition
2. Potential triggers
3. Improvement suggestions

Format the response in JSON.`, data)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	body := stripFences(text)
	if json.Valid([]byte(body)) {
		return json.RawMessage(body), nil
	}
	return json.Marshal(map[string]string{"analysis": text})
}

// Insights answers a free-form wellness question.
func (s *InsightService) Insights(ctx context.Context, userID primitive.ObjectID, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", fmt.Errorf("%w: userInput is required", ErrInvalidInput)
	}
	if len([]rune(userInput)) > maxInsightInputLen {
		return "", fmt.Errorf("%w: userInput must be at most %d characters", ErrInvalidInput, maxInsightInputLen)
	}

	prompt := fmt.Sprintf(`Generate personalized health insights based on the following user input: %s.
Provide actionable recommendations for wellness, considering physical and mental health.`, userInput)

	logger.Log.WithField("user_id", userID.Hex()).Info("Generating free-form insights")
	return s.generate(ctx, prompt)
}
