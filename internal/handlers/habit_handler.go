package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// HabitHandler handles HTTP requests related to habits and their progress.
type HabitHandler struct {
	Service *services.HabitService
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(service *services.HabitService) *HabitHandler {
	return &HabitHandler{Service: service}
}

// CreateHabitHandler handles POST /api/habits.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	habit, err := h.Service.CreateHabit(r.Context(), userID, in)
	if err != nil {
		writeError(w, err, "Failed to create habit")
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  userID.Hex(),
		"habitID": habit.ID.Hex(),
	}).Info("Habit successfully created")
	writeJSON(w, http.StatusCreated, habit)
}

// GetHabitsHandler handles GET /api/habits, optionally filtered by ?type=.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	kind := models.HabitKind(r.URL.Query().Get("type"))
	habits, err := h.Service.ListHabits(r.Context(), userID, kind)
	if err != nil {
		writeError(w, err, "Failed to get habits")
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// GetHabitHandler handles GET /api/habits/{id}.
func (h *HabitHandler) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// UpdateHabitHandler handles PUT /api/habits/{id}.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	habit, err := h.Service.UpdateHabit(r.Context(), userID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err, "Failed to update habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// DeleteHabitHandler handles DELETE /api/habits/{id}.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete habit")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted"})
}

// LogProgressHandler handles POST /api/habits/{id}/progress. The body must carry
// a value; an omitted date means now.
func (h *HabitHandler) LogProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.CompletionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			http.Error(w, "Request body is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	res, err := h.Service.LogCompletion(r.Context(), userID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err, "Failed to log progress")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GetBadgesHandler handles GET /api/habits/{id}/badges.
func (h *HabitHandler) GetBadgesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	badges, err := h.Service.GetBadges(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get badges")
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// GetSummaryHandler handles GET /api/habits/{id}/summary.
func (h *HabitHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.GetSummary(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
