package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

type likeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *sql.DB) *likeRepository {
	return &likeRepository{
		db: db,
	}
}

// Add records a like from a user on a lesson. The composite primary key on
// (lesson_id, user_id) makes the operation idempotent: a repeated like is
// absorbed by INSERT IGNORE and reported through AlreadyLiked instead of
// failing. The insert and the count read run in one transaction.
func (r *likeRepository) Add(ctx context.Context, lessonID, userID int64) (*models.LikeResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`, lessonID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, models.ErrNotFound)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO lesson_likes (lesson_id, user_id) VALUES (?, ?)`,
		lessonID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM lesson_likes WHERE lesson_id = ?`, lessonID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.LikeResult{
		LikesCount:   count,
		AlreadyLiked: rowsAffected == 0,
	}, nil
}

// Count returns the number of likes on a lesson. The count is read through
// the lessons table so that a missing lesson is distinguishable from a
// lesson with zero likes.
func (r *likeRepository) Count(ctx context.Context, lessonID int64) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM lesson_likes ll WHERE ll.lesson_id = l.id)
		FROM lessons l
		WHERE l.id = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("lesson %d: %w", lessonID, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// LikedBy reports whether a user has liked a lesson
func (r *likeRepository) LikedBy(ctx context.Context, lessonID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lesson_likes WHERE lesson_id = ? AND user_id = ?)`

	var liked bool
	err := r.db.QueryRowContext(ctx, query, lessonID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return liked, nil
}
