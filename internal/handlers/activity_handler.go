package handlers

import (
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/services"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// GET /api/activities?limit=
func (h *ActivityHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	activities, err := h.Service.GetRecentActivities(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err, "Failed to get activities")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
