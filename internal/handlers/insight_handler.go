package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/services"
)

type InsightHandler struct {
	Service *services.InsightService
}

func NewInsightHandler(service *services.InsightService) *InsightHandler {
	return &InsightHandler{Service: service}
}

// GET /api/ai/recommendations
func (h *InsightHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	recs, err := h.Service.Recommendations(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to generate health insights")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// GET /api/ai/mood-analysis
func (h *InsightHandler) MoodAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	analysis, err := h.Service.MoodAnalysis(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to analyze mood trends")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// POST /api/ai/insights
func (h *InsightHandler) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		UserInput string `json:"userInput"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	text, err := h.Service.Insights(r.Context(), userID, req.UserInput)
	if err != nil {
		writeError(w, err, "AI insights generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}
