package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/services"
	"github.com/gorilla/mux"
)

type MoodHandler struct {
	Service *services.MoodService
}

func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{Service: service}
}

// POST /api/moods
func (h *MoodHandler) CreateMoodHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.MoodInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.CreateMood(r.Context(), userID, in)
	if err != nil {
		writeError(w, err, "Failed to save mood")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// GET /api/moods?limit=
func (h *MoodHandler) GetMoodsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	entries, err := h.Service.ListMoods(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err, "Failed to get moods")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GET /api/moods/stats?days=
func (h *MoodHandler) GetMoodStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		http.Error(w, "Invalid days", http.StatusBadRequest)
		return
	}

	stats, err := h.Service.Stats(r.Context(), userID, days)
	if err != nil {
		writeError(w, err, "Failed to get mood stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DELETE /api/moods/{id}
func (h *MoodHandler) DeleteMoodHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteMood(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete mood")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mood entry deleted"})
}
