package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/Dias221467/Wellness_Tracker/pkg/jwt"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func echoUser(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "no user", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(claims.UserID))
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(testSecret)(http.HandlerFunc(echoUser))

	valid, err := jwtutil.GenerateToken("abc123", "ana", "ana@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	foreign, err := jwtutil.GenerateToken("abc123", "ana", "ana@example.com", "other", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"bad signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "abc123", rr.Body.String())
			}
		})
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	assert.Nil(t, GetUserFromContext(context.Background()))
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "fixed-id", rr.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/habits/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits/42", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

type recordingUpdater struct {
	ids []primitive.ObjectID
	err error
}

func (u *recordingUpdater) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	u.ids = append(u.ids, id)
	return u.err
}

func TestUpdateLastActiveMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	u := &recordingUpdater{err: errors.New("db down")}
	h := UpdateLastActiveMiddleware(u)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &jwtutil.Claims{UserID: userID.Hex()}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []primitive.ObjectID{userID}, u.ids)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, u.ids, 1)
}
