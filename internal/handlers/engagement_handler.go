package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/ulitkinaslunkak/studybuddy-lang/internal/auth/middleware"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// EngagementService is the interface that wraps methods for likes, reviews
// and points business logic.
type EngagementService interface {
	// AddLike records a like from the user on a lesson idempotently
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the liking user.
	//
	// Returns the like outcome and an error if any.
	AddLike(ctx context.Context, lessonID, userID int64) (*models.LikeResult, error)
	// GetLikeCount returns the like count of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the like count and an error if any.
	GetLikeCount(ctx context.Context, lessonID int64) (int, error)
	// GetLikeStatus returns the like count of a lesson and whether the
	// requesting user is among the likers
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the requesting user.
	//
	// Returns the like status and an error if any.
	GetLikeStatus(ctx context.Context, lessonID, userID int64) (*models.LikeStatus, error)
	// AddReview attaches a review to a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the authoring user.
	// "req" is the review request.
	//
	// Returns the created review and an error if any.
	AddReview(ctx context.Context, lessonID, userID int64, req *models.AddReviewRequest) (*models.Review, error)
	// ListReviews retrieves all reviews of a lesson in submission order
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of reviews and an error if any.
	ListReviews(ctx context.Context, lessonID int64) ([]models.Review, error)
	// RemoveReview deletes a review authored by the user
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the requesting user.
	// "reviewID" is the ID of the review.
	//
	// Returns an error if any.
	RemoveReview(ctx context.Context, lessonID, userID int64, reviewID string) error
	// AccruePoints adds a positive amount to the points balance of the user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "amount" is the positive amount to add.
	//
	// Returns the new balance and an error if any.
	AccruePoints(ctx context.Context, userID int64, amount int) (int, error)
}

// QuizEvaluator is the interface that wraps quiz submission evaluation.
type QuizEvaluator interface {
	// EvaluateSubmission scores a complete quiz submission against the quiz
	// of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "submission" is the quiz submission.
	//
	// Returns the evaluation and an error if any.
	EvaluateSubmission(ctx context.Context, lessonID int64, submission *models.QuizSubmission) (*models.QuizEvaluation, error)
}

// EngagementHandler handles HTTP requests for likes, reviews, points and
// quiz submissions
type EngagementHandler struct {
	BaseHandler
	service EngagementService
	quiz    QuizEvaluator
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(svc EngagementService, quiz QuizEvaluator, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		service:     svc,
		quiz:        quiz,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all engagement handler routes. The like count
// and review listing are public reads; optionalAuthMiddleware only enriches
// them with the caller identity when a token is present.
func (h *EngagementHandler) RegisterRoutes(r chi.Router, authMiddleware, optionalAuthMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMiddleware)
			r.Get("/likes", h.GetLikes)
			r.Get("/reviews", h.ListReviews)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/like", h.AddLike)
			r.Post("/reviews", h.AddReview)
			r.Delete("/reviews/{reviewId}", h.RemoveReview)
			r.Post("/quiz/submit", h.SubmitQuiz)
		})
	})
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/add-points", h.AddPoints)
	})
}

// AddLike handles POST /lessons/{id}/like
// @Summary Like a lesson
// @Description Record a like on a lesson. Liking twice is not an error: the count stays unchanged and alreadyLiked is set.
// @Tags engagement
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LikeResult "Like count and alreadyLiked flag"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id}/like [post]
func (h *EngagementHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := h.subjectAndLesson(w, r)
	if !ok {
		return
	}

	result, err := h.service.AddLike(r.Context(), lessonID, userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetLikes handles GET /lessons/{id}/likes
// @Summary Get like status
// @Description Get the like count of a lesson. When called with a token the response also reports whether the caller has liked it.
// @Tags engagement
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LikeStatus "Like count, plus the liked flag for authenticated callers"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id}/likes [get]
func (h *EngagementHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.lessonID(w, r)
	if !ok {
		return
	}

	if userID, authed := authmw.GetUserID(r.Context()); authed {
		status, err := h.service.GetLikeStatus(r.Context(), lessonID, userID)
		if err != nil {
			h.RespondServiceError(w, err)
			return
		}
		h.RespondJSON(w, http.StatusOK, status)
		return
	}

	count, err := h.service.GetLikeCount(r.Context(), lessonID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, &models.LikeStatus{LikesCount: count})
}

// AddReview handles POST /lessons/{id}/reviews
// @Summary Add a review
// @Description Attach a review to a lesson on behalf of the authenticated user
// @Tags engagement
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.AddReviewRequest true "Review text"
// @Success 201 {object} models.Review "Created review"
// @Failure 400 {object} map[string]string "Bad request - invalid id or empty review text"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id}/reviews [post]
func (h *EngagementHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := h.subjectAndLesson(w, r)
	if !ok {
		return
	}

	var req models.AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.AddReview(r.Context(), lessonID, userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /lessons/{id}/reviews
// @Summary List reviews
// @Description Get all reviews of a lesson in submission order
// @Tags engagement
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {array} models.Review "List of reviews"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id}/reviews [get]
func (h *EngagementHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.lessonID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), lessonID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	h.RespondJSON(w, http.StatusOK, reviews)
}

// RemoveReview handles DELETE /lessons/{id}/reviews/{reviewId}
// @Summary Remove a review
// @Description Delete a review. Only the author of the review may remove it.
// @Tags engagement
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 400 {object} map[string]string "Bad request - invalid id parameter"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 403 {object} map[string]string "Forbidden - not the review author"
// @Failure 404 {object} map[string]string "Not found - lesson or review not found"
// @Router /lessons/{id}/reviews/{reviewId} [delete]
func (h *EngagementHandler) RemoveReview(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := h.subjectAndLesson(w, r)
	if !ok {
		return
	}

	reviewID := chi.URLParam(r, "reviewId")
	if reviewID == "" {
		h.RespondError(w, http.StatusBadRequest, "reviewId parameter is required")
		return
	}

	if err := h.service.RemoveReview(r.Context(), lessonID, userID, reviewID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

// SubmitQuiz handles POST /lessons/{id}/quiz/submit
// @Summary Submit quiz answers
// @Description Score a complete quiz submission against the quiz of a lesson. Evaluation does not modify the lesson.
// @Tags engagement
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.QuizSubmission true "Answers keyed by question index"
// @Success 200 {object} models.QuizEvaluation "Per-question results and score"
// @Failure 400 {object} map[string]string "Bad request - incomplete submission or answer out of range"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 404 {object} map[string]string "Not found - lesson not found"
// @Router /lessons/{id}/quiz/submit [post]
func (h *EngagementHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	_, lessonID, ok := h.subjectAndLesson(w, r)
	if !ok {
		return
	}

	var submission models.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evaluation, err := h.quiz.EvaluateSubmission(r.Context(), lessonID, &submission)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, evaluation)
}

// AddPoints handles POST /users/add-points
// @Summary Accrue points
// @Description Add a positive amount to the points balance of the authenticated user and return the new total
// @Tags engagement
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.AddPointsRequest true "Points to add"
// @Success 200 {object} map[string]int "New points balance"
// @Failure 400 {object} map[string]string "Bad request - amount must be positive"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 404 {object} map[string]string "Not found - user no longer exists"
// @Router /users/add-points [post]
func (h *EngagementHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.AddPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	points, err := h.service.AccruePoints(r.Context(), userID, req.Points)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"points": points})
}

// subjectAndLesson extracts the authenticated user and the lesson id path
// parameter, responding with the appropriate error on failure
func (h *EngagementHandler) subjectAndLesson(w http.ResponseWriter, r *http.Request) (userID, lessonID int64, ok bool) {
	userID, found := authmw.GetUserID(r.Context())
	if !found {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, 0, false
	}

	lessonID, ok = h.lessonID(w, r)
	if !ok {
		return 0, 0, false
	}

	return userID, lessonID, true
}
