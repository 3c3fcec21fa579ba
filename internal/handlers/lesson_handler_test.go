package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authmw "github.com/ulitkinaslunkak/studybuddy-lang/internal/auth/middleware"
	authservice "github.com/ulitkinaslunkak/studybuddy-lang/internal/auth/service"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/services"
)

// stubLessonsService returns a fixed lesson catalog
type stubLessonsService struct{}

func (stubLessonsService) CreateLesson(ctx context.Context, userID int64, req *models.CreateLessonRequest, uploads *services.MediaUploads) (*models.Lesson, error) {
	return &models.Lesson{ID: 1, CreatedBy: userID}, nil
}

func (stubLessonsService) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	return &models.Lesson{ID: id}, nil
}

func (stubLessonsService) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error) {
	return []models.LessonSummary{{ID: 1, Title: "Greetings"}}, nil
}

func (stubLessonsService) UpdateLesson(ctx context.Context, lessonID, userID int64, req *models.UpdateLessonRequest) (*models.Lesson, error) {
	return &models.Lesson{ID: lessonID}, nil
}

func (stubLessonsService) DeleteLesson(ctx context.Context, lessonID, userID int64) error {
	return nil
}

// stubProfileReader returns a fixed user profile
type stubProfileReader struct{}

func (stubProfileReader) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, Email: "user@example.com", Points: 15}, nil
}

func setupLessonRouter(t *testing.T) (chi.Router, string) {
	t.Helper()
	tg := authservice.NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.GenerateToken(7)
	require.NoError(t, err)

	h := NewLessonHandler(stubLessonsService{}, stubProfileReader{}, zap.NewNop())

	r := chi.NewRouter()
	h.RegisterRoutes(r, authmw.AuthMiddleware(tg), authmw.OptionalAuthMiddleware(tg))
	return r, token
}

func TestLessonHandler_Main_Anonymous(t *testing.T) {
	router, _ := setupLessonRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/main", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["user"])
	lessons, ok := body["lessons"].([]any)
	require.True(t, ok)
	assert.Len(t, lessons, 1)
}

func TestLessonHandler_Main_Authenticated(t *testing.T) {
	router, token := setupLessonRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/main", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", user["email"])
}

func TestLessonHandler_MutationsRequireAuth(t *testing.T) {
	router, _ := setupLessonRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/lessons"},
		{http.MethodPut, "/lessons/1"},
		{http.MethodDelete, "/lessons/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
