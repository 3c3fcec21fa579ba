package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// Create inserts a new review. The caller assigns the review ID.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO lesson_reviews (id, lesson_id, user_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.LessonID,
		review.UserID,
		review.Text,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByLessonID retrieves all reviews of a lesson in submission order.
// Ordering is by the seq insert counter, not created_at: timestamps can
// collide and the UUID ids carry no order.
func (r *reviewRepository) GetByLessonID(ctx context.Context, lessonID int64) ([]models.Review, error) {
	query := `
		SELECT id, lesson_id, user_id, text, created_at
		FROM lesson_reviews
		WHERE lesson_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.LessonID,
			&review.UserID,
			&review.Text,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// GetByID retrieves a single review of a lesson
func (r *reviewRepository) GetByID(ctx context.Context, lessonID int64, reviewID string) (*models.Review, error) {
	query := `
		SELECT id, lesson_id, user_id, text, created_at
		FROM lesson_reviews
		WHERE id = ? AND lesson_id = ?
		LIMIT 1
	`

	var review models.Review
	err := r.db.QueryRowContext(ctx, query, reviewID, lessonID).Scan(
		&review.ID,
		&review.LessonID,
		&review.UserID,
		&review.Text,
		&review.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %s: %w", reviewID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return &review, nil
}

// Delete removes a review by ID
func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	query := `DELETE FROM lesson_reviews WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("review %s: %w", reviewID, models.ErrNotFound)
	}

	return nil
}
