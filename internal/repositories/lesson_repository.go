package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// Create inserts a new lesson row. The embedded content, vocabulary and quiz
// are stored as JSON columns so the aggregate is written in one statement.
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	contentJSON, vocabularyJSON, quizJSON, err := marshalLessonDocuments(lesson)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (title, description, language, difficulty, content, vocabulary, quiz, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Title,
		lesson.Description,
		lesson.Language,
		lesson.Difficulty,
		contentJSON,
		vocabularyJSON,
		quizJSON,
		lesson.CreatedBy,
		lesson.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = id
	return nil
}

// Exists reports whether a lesson with the given ID exists
func (r *lessonRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a lesson by its ID together with its like count
func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `
		SELECT
			l.id, l.title, l.description, l.language, l.difficulty,
			l.content, l.vocabulary, l.quiz, l.created_by, l.created_at,
			(SELECT COUNT(*) FROM lesson_likes ll WHERE ll.lesson_id = l.id) AS likes_count
		FROM lessons l
		WHERE l.id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	var contentJSON, vocabularyJSON, quizJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Language,
		&lesson.Difficulty,
		&contentJSON,
		&vocabularyJSON,
		&quizJSON,
		&lesson.CreatedBy,
		&lesson.CreatedAt,
		&lesson.LikesCount,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	if err := unmarshalLessonDocuments(&lesson, contentJSON, vocabularyJSON, quizJSON); err != nil {
		return nil, err
	}

	return &lesson, nil
}

// List retrieves lesson summaries with optional language/difficulty filters
// and ordering. Difficulty rank is applied before creation time when both
// sort keys are requested.
func (r *lessonRepository) List(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error) {
	var whereParts []string
	var args []any

	if filter.Language != "" {
		whereParts = append(whereParts, "l.language = ?")
		args = append(args, filter.Language)
	}
	if filter.Difficulty != "" {
		whereParts = append(whereParts, "l.difficulty = ?")
		args = append(args, filter.Difficulty)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var orderParts []string
	if filter.SortByDifficulty {
		orderParts = append(orderParts, fmt.Sprintf("FIELD(l.difficulty, 'beginner', 'intermediate', 'advanced') %s", direction))
	}
	if filter.SortByCreatedAt {
		orderParts = append(orderParts, fmt.Sprintf("l.created_at %s", direction))
	}
	if len(orderParts) == 0 {
		orderParts = append(orderParts, "l.id ASC")
	}

	query := fmt.Sprintf(`
		SELECT
			l.id, l.title, l.description, l.language, l.difficulty, l.created_by, l.created_at,
			(SELECT COUNT(*) FROM lesson_likes ll WHERE ll.lesson_id = l.id) AS likes_count
		FROM lessons l
		%s
		ORDER BY %s
	`, whereClause, strings.Join(orderParts, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonSummary
	for rows.Next() {
		var lesson models.LessonSummary
		err := rows.Scan(
			&lesson.ID,
			&lesson.Title,
			&lesson.Description,
			&lesson.Language,
			&lesson.Difficulty,
			&lesson.CreatedBy,
			&lesson.CreatedAt,
			&lesson.LikesCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// Update replaces the metadata, content, vocabulary and quiz of a lesson
// wholesale. created_by, likes and reviews are never part of the statement.
func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	contentJSON, vocabularyJSON, quizJSON, err := marshalLessonDocuments(lesson)
	if err != nil {
		return err
	}

	query := `
		UPDATE lessons
		SET title = ?, description = ?, language = ?, difficulty = ?, content = ?, vocabulary = ?, quiz = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Title,
		lesson.Description,
		lesson.Language,
		lesson.Difficulty,
		contentJSON,
		vocabularyJSON,
		quizJSON,
		lesson.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// The DSN sets clientFoundRows, so zero here means the row is gone
	// (e.g. a delete won the race), not that the values were unchanged.
	if rowsAffected == 0 {
		return fmt.Errorf("lesson %d: %w", lesson.ID, models.ErrNotFound)
	}

	return nil
}

// Delete removes a lesson by ID. Likes and reviews are removed with it by
// the foreign key cascade.
func (r *lessonRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// marshalLessonDocuments encodes the JSON column values of a lesson
func marshalLessonDocuments(lesson *models.Lesson) (content, vocabulary, quiz []byte, err error) {
	content, err = json.Marshal(lesson.Content)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal content: %w", err)
	}
	vocabulary, err = json.Marshal(lesson.Vocabulary)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal vocabulary: %w", err)
	}
	quiz, err = json.Marshal(lesson.Quiz)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal quiz: %w", err)
	}
	return content, vocabulary, quiz, nil
}

// unmarshalLessonDocuments decodes the JSON column values into a lesson
func unmarshalLessonDocuments(lesson *models.Lesson, content, vocabulary, quiz []byte) error {
	if err := json.Unmarshal(content, &lesson.Content); err != nil {
		return fmt.Errorf("failed to unmarshal content: %w", err)
	}
	if err := json.Unmarshal(vocabulary, &lesson.Vocabulary); err != nil {
		return fmt.Errorf("failed to unmarshal vocabulary: %w", err)
	}
	if err := json.Unmarshal(quiz, &lesson.Quiz); err != nil {
		return fmt.Errorf("failed to unmarshal quiz: %w", err)
	}
	return nil
}
