package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Wellness_Tracker/internal/config"
	"github.com/Dias221467/Wellness_Tracker/internal/models"
	"github.com/Dias221467/Wellness_Tracker/internal/services"
	jwtutil "github.com/Dias221467/Wellness_Tracker/pkg/jwt"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles registration, login and profile requests.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (h *UserHandler) issueToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: user.Public()})
}

// RegisterUserHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err, "Failed to register user")
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User registered successfully")
	h.issueToken(w, http.StatusCreated, user)
}

// LoginUserHandler handles POST /api/auth/login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, err, "Failed to log in")
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	h.issueToken(w, http.StatusOK, user)
}

// VerifyHandler handles GET /api/auth/verify and returns the token's user.
func (h *UserHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to verify user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "user": user.Public()})
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, profile)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	log.WithField("userID", userID.Hex()).Info("Profile updated")
	writeJSON(w, http.StatusOK, user)
}
