package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// LikeRepository defines methods for like data access
type LikeRepository interface {
	// Add records a like from a user on a lesson idempotently
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the liking user.
	//
	// Returns the like outcome and an error if any.
	Add(ctx context.Context, lessonID, userID int64) (*models.LikeResult, error)
	// Count returns the number of likes on a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the like count and an error if any.
	Count(ctx context.Context, lessonID int64) (int, error)
	// LikedBy reports whether a user has liked a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the user.
	//
	// Returns a boolean and an error if any.
	LikedBy(ctx context.Context, lessonID, userID int64) (bool, error)
}

// ReviewRepository defines methods for review data access
type ReviewRepository interface {
	// Create creates a new review
	//
	// "ctx" is the context for the request.
	// "review" is the review to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, review *models.Review) error
	// GetByLessonID retrieves all reviews of a lesson in submission order
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of reviews and an error if any.
	GetByLessonID(ctx context.Context, lessonID int64) ([]models.Review, error)
	// GetByID retrieves a single review of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "reviewID" is the ID of the review.
	//
	// Returns the review and an error if any.
	GetByID(ctx context.Context, lessonID int64, reviewID string) (*models.Review, error)
	// Delete deletes a review
	//
	// "ctx" is the context for the request.
	// "reviewID" is the ID of the review.
	//
	// Returns an error if any.
	Delete(ctx context.Context, reviewID string) error
}

// PointsRepository defines methods for points balance access
type PointsRepository interface {
	// AddPoints atomically increments the points balance of a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "amount" is the positive amount to add.
	//
	// Returns the new balance and an error if any.
	AddPoints(ctx context.Context, userID int64, amount int) (int, error)
}

// LessonChecker defines the lesson existence check needed before attaching
// engagement to a lesson
type LessonChecker interface {
	// Exists reports whether a lesson with the given ID exists
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, id int64) (bool, error)
}

type engagementService struct {
	likeRepo   LikeRepository
	reviewRepo ReviewRepository
	pointsRepo PointsRepository
	lessonRepo LessonChecker
}

// NewEngagementService creates a new engagement service
func NewEngagementService(likeRepo LikeRepository, reviewRepo ReviewRepository, pointsRepo PointsRepository, lessonRepo LessonChecker) *engagementService {
	return &engagementService{
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
		pointsRepo: pointsRepo,
		lessonRepo: lessonRepo,
	}
}

// AddLike records a like from the user on a lesson. Liking twice is not an
// error: the repeated attempt leaves the count unchanged and is reported
// through AlreadyLiked.
func (s *engagementService) AddLike(ctx context.Context, lessonID, userID int64) (*models.LikeResult, error) {
	return s.likeRepo.Add(ctx, lessonID, userID)
}

// GetLikeCount returns the like count of a lesson
func (s *engagementService) GetLikeCount(ctx context.Context, lessonID int64) (int, error) {
	return s.likeRepo.Count(ctx, lessonID)
}

// GetLikeStatus returns the like count of a lesson and whether the
// requesting user is among the likers
func (s *engagementService) GetLikeStatus(ctx context.Context, lessonID, userID int64) (*models.LikeStatus, error) {
	count, err := s.likeRepo.Count(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.LikedBy(ctx, lessonID, userID)
	if err != nil {
		return nil, err
	}

	return &models.LikeStatus{
		LikesCount: count,
		Liked:      &liked,
	}, nil
}

// AddReview attaches a review to a lesson. The author is the authenticated
// user; review text must be non-empty.
func (s *engagementService) AddReview(ctx context.Context, lessonID, userID int64, req *models.AddReviewRequest) (*models.Review, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("review text is required: %w", models.ErrValidation)
	}

	exists, err := s.lessonRepo.Exists(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, models.ErrNotFound)
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		LessonID:  lessonID,
		UserID:    userID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews retrieves all reviews of a lesson in submission order
func (s *engagementService) ListReviews(ctx context.Context, lessonID int64) ([]models.Review, error) {
	exists, err := s.lessonRepo.Exists(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, models.ErrNotFound)
	}

	return s.reviewRepo.GetByLessonID(ctx, lessonID)
}

// RemoveReview deletes a review. Only the author of the review may remove
// it; the lesson creator has no special rights here.
func (s *engagementService) RemoveReview(ctx context.Context, lessonID, userID int64, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, lessonID, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return fmt.Errorf("review %s does not belong to user %d: %w", reviewID, userID, models.ErrForbidden)
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

// AccruePoints adds a positive amount to the points balance of the
// authenticated user and returns the new total
func (s *engagementService) AccruePoints(ctx context.Context, userID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("points amount must be positive: %w", models.ErrValidation)
	}

	return s.pointsRepo.AddPoints(ctx, userID, amount)
}
