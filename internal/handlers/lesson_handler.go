package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/ulitkinaslunkak/studybuddy-lang/internal/auth/middleware"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/services"
)

// maxUploadSize caps the in-memory part of multipart lesson uploads
const maxUploadSize = 32 << 20

// LessonsService is the interface that wraps methods for lesson business logic.
type LessonsService interface {
	// CreateLesson validates the request, assembles the uploaded media and
	// creates the lesson on behalf of the authenticated user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the creating user.
	// "req" is the lesson creation request.
	// "uploads" are the uploaded media files, or nil for a JSON-only request.
	//
	// Returns the created lesson and an error if any.
	CreateLesson(ctx context.Context, userID int64, req *models.CreateLessonRequest, uploads *services.MediaUploads) (*models.Lesson, error)
	// GetLesson retrieves the full lesson aggregate
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	// ListLessons retrieves lesson summaries with optional filtering and sorting
	//
	// "ctx" is the context for the request.
	// "filter" holds the language/difficulty filters and sort keys.
	//
	// Returns a list of lesson summaries and an error if any.
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error)
	// UpdateLesson replaces the metadata, content, vocabulary and quiz of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the requesting user.
	// "req" is the lesson update request.
	//
	// Returns the updated lesson and an error if any.
	UpdateLesson(ctx context.Context, lessonID, userID int64, req *models.UpdateLessonRequest) (*models.Lesson, error)
	// DeleteLesson deletes a lesson together with its likes and reviews
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the requesting user.
	//
	// Returns an error if any.
	DeleteLesson(ctx context.Context, lessonID, userID int64) error
}

// ProfileReader defines the profile read access needed for the main page
type ProfileReader interface {
	// GetProfile retrieves the profile of the authenticated user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service  LessonsService
	profiles ProfileReader
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonsService, profiles ProfileReader, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		profiles:    profiles,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes. The main page is a
// public read; optionalAuthMiddleware only adds the caller profile to it
// when a token is present.
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware, optionalAuthMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(optionalAuthMiddleware)
		r.Get("/main", h.Main)
	})
}

// List handles GET /lessons
// @Summary List lessons
// @Description Get lesson summaries with optional language/difficulty filters and sorting
// @Tags lessons
// @Produce json
// @Param language query string false "Filter by language"
// @Param difficulty_level query string false "Filter by difficulty: beginner, intermediate or advanced"
// @Param sort query string false "Comma-separated sort keys: difficulty, created_at"
// @Param order query string false "Sort direction: asc (default) or desc"
// @Success 200 {array} models.LessonSummary "List of lessons"
// @Failure 400 {object} map[string]string "Bad request - unknown difficulty level"
// @Router /lessons [get]
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.LessonFilter{
		Language:   r.URL.Query().Get("language"),
		Difficulty: models.Difficulty(r.URL.Query().Get("difficulty_level")),
		SortDesc:   r.URL.Query().Get("order") == "desc",
	}

	for _, key := range strings.Split(r.URL.Query().Get("sort"), ",") {
		switch strings.TrimSpace(key) {
		case "difficulty":
			filter.SortByDifficulty = true
		case "created_at":
			filter.SortByCreatedAt = true
		}
	}

	lessons, err := h.service.ListLessons(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if lessons == nil {
		lessons = []models.LessonSummary{}
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetByID handles GET /lessons/{id}
// @Summary Get lesson by ID
// @Description Get the full lesson aggregate: content, vocabulary, quiz, like count and reviews
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson details"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lessonID(w, r)
	if !ok {
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// Create handles POST /lessons
// @Summary Create a lesson
// @Description Create a lesson. Accepts multipart/form-data with lesson fields plus uploaded audio/video/picture files and their description arrays, or plain JSON without media.
// @Tags lessons
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Bad request - missing fields, unknown difficulty or malformed quiz"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Router /lessons [post]
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateLessonRequest
	var uploads *services.MediaUploads

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		uploads, err = h.parseMultipartLesson(r, &req)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	lesson, err := h.service.CreateLesson(r.Context(), userID, &req, uploads)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// Update handles PUT /lessons/{id}
// @Summary Update a lesson
// @Description Replace the metadata, content, vocabulary and quiz of a lesson wholesale. Creator only; likes and reviews survive the update.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Replacement lesson data"
// @Success 200 {object} models.Lesson "Updated lesson"
// @Failure 400 {object} map[string]string "Bad request - invalid id or malformed fields"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 403 {object} map[string]string "Forbidden - not the lesson creator"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := h.lessonID(w, r)
	if !ok {
		return
	}

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), id, userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// Delete handles DELETE /lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson together with its likes and reviews. Creator only.
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 403 {object} map[string]string "Forbidden - not the lesson creator"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := h.lessonID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), id, userID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "lesson deleted"})
}

// Main handles GET /main
// @Summary Get main page data
// @Description Get the lesson catalog, together with the caller profile when called with a token
// @Tags lessons
// @Produce json
// @Success 200 {object} map[string]any "Lessons, plus the user profile for authenticated callers"
// @Router /main [get]
func (h *LessonHandler) Main(w http.ResponseWriter, r *http.Request) {
	var user *models.User
	if userID, ok := authmw.GetUserID(r.Context()); ok {
		var err error
		user, err = h.profiles.GetProfile(r.Context(), userID)
		if err != nil {
			h.RespondServiceError(w, err)
			return
		}
	}

	lessons, err := h.service.ListLessons(r.Context(), models.LessonFilter{})
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if lessons == nil {
		lessons = []models.LessonSummary{}
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"lessons": lessons,
	})
}

// parseMultipartLesson extracts lesson fields, JSON sub-documents, uploaded
// media files and description arrays from a multipart creation request
func (h *LessonHandler) parseMultipartLesson(r *http.Request, req *models.CreateLessonRequest) (*services.MediaUploads, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	req.Title = r.FormValue("title")
	req.Description = r.FormValue("description")
	req.Language = r.FormValue("language")
	req.Difficulty = models.Difficulty(r.FormValue("difficulty_level"))

	if err := decodeJSONField(r, "text_fragments", &req.Content.TextFragments); err != nil {
		return nil, err
	}
	if err := decodeJSONField(r, "vocabulary", &req.Vocabulary); err != nil {
		return nil, err
	}
	if err := decodeJSONField(r, "quiz", &req.Quiz); err != nil {
		return nil, err
	}

	uploads := &services.MediaUploads{
		Audio:    formUploads(r, "audio"),
		Video:    formUploads(r, "video"),
		Pictures: formUploads(r, "pictures"),
	}

	if err := decodeJSONField(r, "audioDescriptions", &uploads.AudioDescriptions); err != nil {
		return nil, err
	}
	if err := decodeJSONField(r, "videoDescriptions", &uploads.VideoDescriptions); err != nil {
		return nil, err
	}
	if err := decodeJSONField(r, "pictureDescriptions", &uploads.PictureDescriptions); err != nil {
		return nil, err
	}

	return uploads, nil
}

// decodeJSONField decodes an optional JSON-encoded form field
func decodeJSONField(r *http.Request, field string, dst any) error {
	value := r.FormValue(field)
	if value == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("invalid JSON in field '%s'", field)
	}
	return nil
}

// formUploads collects the uploaded files of one form field in request order
func formUploads(r *http.Request, field string) []services.Upload {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File[field]
	uploads := make([]services.Upload, 0, len(headers))
	for _, header := range headers {
		uploads = append(uploads, services.Upload{
			Filename: header.Filename,
			Data:     &lazyFormFile{header: header},
		})
	}
	if len(uploads) == 0 {
		return nil
	}
	return uploads
}

// lazyFormFile opens the underlying multipart file on first read so that
// uploads which are never consumed cost nothing
type lazyFormFile struct {
	header *multipart.FileHeader
	file   multipart.File
}

func (f *lazyFormFile) Read(p []byte) (int, error) {
	if f.file == nil {
		file, err := f.header.Open()
		if err != nil {
			return 0, err
		}
		f.file = file
	}
	return f.file.Read(p)
}
