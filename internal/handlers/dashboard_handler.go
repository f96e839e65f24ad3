package handlers

import (
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// GET /api/dashboard/data
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	dash, err := h.Service.GetDashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Dashboard data retrieval failed")
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
