package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// LessonRepository defines methods for lesson aggregate data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID together with its like count
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	// List retrieves lesson summaries with optional filtering and sorting
	//
	// "ctx" is the context for the request.
	// "filter" holds the language/difficulty filters and sort keys.
	//
	// Returns a list of lesson summaries and an error if any.
	List(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error)
	// Create creates a new lesson
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update replaces the metadata, content, vocabulary and quiz of a lesson
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, lesson *models.Lesson) error
	// Delete deletes a lesson together with its likes and reviews
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int64) error
}

// LessonReviewReader defines the review read access needed to assemble a
// full lesson aggregate
type LessonReviewReader interface {
	// GetByLessonID retrieves all reviews of a lesson in submission order
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of reviews and an error if any.
	GetByLessonID(ctx context.Context, lessonID int64) ([]models.Review, error)
}

// MediaAssembler defines methods for turning uploaded files into stored
// media items
type MediaAssembler interface {
	// Assemble stores the uploads of one media kind and pairs each stored
	// reference with its description positionally
	//
	// "kind" is the media kind (audio, video, pictures).
	// "uploads" are the uploaded files in request order.
	// "descriptions" are the descriptions in request order.
	//
	// Returns the assembled media items and an error if any.
	Assemble(kind string, uploads []Upload, descriptions []string) ([]models.MediaItem, error)
	// Discard removes the stored files behind all media items of a lesson
	//
	// "content" is the lesson content whose media files are removed.
	//
	// Returns an error if any.
	Discard(content models.LessonContent) error
}

type lessonService struct {
	lessonRepo LessonRepository
	reviewRepo LessonReviewReader
	assembler  MediaAssembler
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, reviewRepo LessonReviewReader, assembler MediaAssembler) *lessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		reviewRepo: reviewRepo,
		assembler:  assembler,
	}
}

// CreateLesson validates the request, assembles the uploaded media into the
// lesson content and creates the lesson. The creator is always the
// authenticated user, never anything carried in the request body.
func (s *lessonService) CreateLesson(ctx context.Context, userID int64, req *models.CreateLessonRequest, uploads *MediaUploads) (*models.Lesson, error) {
	if err := validateLessonFields(req.Title, req.Language, req.Difficulty, req.Quiz, req.Vocabulary); err != nil {
		return nil, err
	}
	if err := validateTextFragments(req.Content.TextFragments); err != nil {
		return nil, err
	}

	content := models.LessonContent{
		TextFragments: req.Content.TextFragments,
	}

	if uploads != nil {
		var err error
		content.Audio, err = s.assembler.Assemble("audio", uploads.Audio, uploads.AudioDescriptions)
		if err != nil {
			return nil, err
		}
		content.Video, err = s.assembler.Assemble("video", uploads.Video, uploads.VideoDescriptions)
		if err != nil {
			return nil, err
		}
		content.Pictures, err = s.assembler.Assemble("pictures", uploads.Pictures, uploads.PictureDescriptions)
		if err != nil {
			return nil, err
		}
	}

	lesson := &models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Difficulty:  req.Difficulty,
		Content:     content,
		Vocabulary:  req.Vocabulary,
		Quiz:        req.Quiz,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// GetLesson retrieves the full lesson aggregate: the lesson itself, its like
// count and its reviews
func (s *lessonService) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByLessonID(ctx, id)
	if err != nil {
		return nil, err
	}
	lesson.Reviews = reviews

	return lesson, nil
}

// ListLessons retrieves lesson summaries with optional filtering and sorting
func (s *lessonService) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty level '%s': %w", filter.Difficulty, models.ErrValidation)
	}

	return s.lessonRepo.List(ctx, filter)
}

// UpdateLesson replaces the metadata, content, vocabulary and quiz of a
// lesson wholesale. Only the creator may update; likes and reviews survive
// the update untouched.
func (s *lessonService) UpdateLesson(ctx context.Context, lessonID, userID int64, req *models.UpdateLessonRequest) (*models.Lesson, error) {
	existing, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != userID {
		return nil, fmt.Errorf("lesson %d does not belong to user %d: %w", lessonID, userID, models.ErrForbidden)
	}

	if err := validateLessonFields(req.Title, req.Language, req.Difficulty, req.Quiz, req.Vocabulary); err != nil {
		return nil, err
	}
	if err := validateTextFragments(req.Content.TextFragments); err != nil {
		return nil, err
	}
	if err := validateMediaItems(req.Content); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ID:          lessonID,
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Difficulty:  req.Difficulty,
		Content:     req.Content,
		Vocabulary:  req.Vocabulary,
		Quiz:        req.Quiz,
		CreatedBy:   existing.CreatedBy,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	lesson.LikesCount = existing.LikesCount
	return lesson, nil
}

// DeleteLesson deletes a lesson. Only the creator may delete; likes and
// reviews are removed atomically with the lesson, and the stored media
// files go with it.
func (s *lessonService) DeleteLesson(ctx context.Context, lessonID, userID int64) error {
	existing, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return fmt.Errorf("lesson %d does not belong to user %d: %w", lessonID, userID, models.ErrForbidden)
	}

	if err := s.lessonRepo.Delete(ctx, lessonID); err != nil {
		return err
	}

	return s.assembler.Discard(existing.Content)
}

// validateLessonFields checks the metadata, quiz and vocabulary shared by
// create and update requests
func validateLessonFields(title, language string, difficulty models.Difficulty, quiz []models.QuizQuestion, vocabulary []models.VocabularyEntry) error {
	if title == "" {
		return fmt.Errorf("title is required: %w", models.ErrValidation)
	}
	if language == "" {
		return fmt.Errorf("language is required: %w", models.ErrValidation)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("unknown difficulty level '%s': %w", difficulty, models.ErrValidation)
	}

	for i, q := range quiz {
		if q.Question == "" {
			return fmt.Errorf("quiz question %d has no text: %w", i, models.ErrValidation)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("quiz question %d needs at least two options: %w", i, models.ErrValidation)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("quiz question %d has correct answer index %d out of range: %w", i, q.CorrectAnswer, models.ErrValidation)
		}
	}

	for i, entry := range vocabulary {
		if entry.Word == "" || entry.Translation == "" {
			return fmt.Errorf("vocabulary entry %d is incomplete: %w", i, models.ErrValidation)
		}
	}

	return nil
}

// validateTextFragments checks that no text fragment is empty
func validateTextFragments(fragments []models.TextFragment) error {
	for i, fragment := range fragments {
		if fragment.Text == "" {
			return fmt.Errorf("text fragment %d has no text: %w", i, models.ErrValidation)
		}
	}
	return nil
}

// validateMediaItems checks that every media item in an update carries a
// file reference. Update bodies arrive as JSON, so the references were
// produced by an earlier upload.
func validateMediaItems(content models.LessonContent) error {
	for kind, items := range map[string][]models.MediaItem{
		"audio":    content.Audio,
		"video":    content.Video,
		"pictures": content.Pictures,
	} {
		for i, item := range items {
			if item.File == "" {
				return fmt.Errorf("%s item %d has no file reference: %w", kind, i, models.ErrValidation)
			}
		}
	}
	return nil
}
