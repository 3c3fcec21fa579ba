package services

import (
	"context"
	"fmt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// mockLessonRepository is a mock implementation of LessonRepository,
// LessonChecker and QuizLessonReader
type mockLessonRepository struct {
	lessons   map[int64]*models.Lesson
	summaries []models.LessonSummary
	created   *models.Lesson
	updated   *models.Lesson
	deleted   []int64
	err       error
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, fmt.Errorf("lesson %d: %w", id, models.ErrNotFound)
	}
	copied := *lesson
	return &copied, nil
}

func (m *mockLessonRepository) List(ctx context.Context, filter models.LessonFilter) ([]models.LessonSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.err != nil {
		return m.err
	}
	lesson.ID = 1
	m.created = lesson
	return nil
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.lessons[lesson.ID]; !ok {
		return fmt.Errorf("lesson %d: %w", lesson.ID, models.ErrNotFound)
	}
	m.updated = lesson
	return nil
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.lessons[id]; !ok {
		return fmt.Errorf("lesson %d: %w", id, models.ErrNotFound)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockLessonRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.lessons[id]
	return ok, nil
}

// mockReviewRepository is a mock implementation of ReviewRepository and
// LessonReviewReader
type mockReviewRepository struct {
	reviews []models.Review
	created *models.Review
	deleted []string
	err     error
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.err != nil {
		return m.err
	}
	m.created = review
	return nil
}

func (m *mockReviewRepository) GetByLessonID(ctx context.Context, lessonID int64) ([]models.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

func (m *mockReviewRepository) GetByID(ctx context.Context, lessonID int64, reviewID string) (*models.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, review := range m.reviews {
		if review.ID == reviewID && review.LessonID == lessonID {
			copied := review
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("review %s: %w", reviewID, models.ErrNotFound)
}

func (m *mockReviewRepository) Delete(ctx context.Context, reviewID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, reviewID)
	return nil
}

// mockLikeRepository is a mock implementation of LikeRepository
type mockLikeRepository struct {
	result *models.LikeResult
	count  int
	liked  bool
	err    error
}

func (m *mockLikeRepository) Add(ctx context.Context, lessonID, userID int64) (*models.LikeResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockLikeRepository) Count(ctx context.Context, lessonID int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockLikeRepository) LikedBy(ctx context.Context, lessonID, userID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.liked, nil
}

// mockPointsRepository is a mock implementation of PointsRepository
type mockPointsRepository struct {
	balance int
	amounts []int
	err     error
}

func (m *mockPointsRepository) AddPoints(ctx context.Context, userID int64, amount int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.amounts = append(m.amounts, amount)
	m.balance += amount
	return m.balance, nil
}

// mockAssembler is a mock implementation of MediaAssembler that pairs
// deterministic references with descriptions positionally
type mockAssembler struct {
	calls     map[string]int
	discarded []models.LessonContent
	err       error
}

func (m *mockAssembler) Discard(content models.LessonContent) error {
	if m.err != nil {
		return m.err
	}
	m.discarded = append(m.discarded, content)
	return nil
}

func (m *mockAssembler) Assemble(kind string, uploads []Upload, descriptions []string) ([]models.MediaItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[kind] = len(uploads)

	if len(uploads) == 0 {
		return nil, nil
	}
	items := make([]models.MediaItem, 0, len(uploads))
	for i := range uploads {
		description := ""
		if i < len(descriptions) {
			description = descriptions[i]
		}
		items = append(items, models.MediaItem{
			File:        fmt.Sprintf("uploads/%s/%d", kind, i),
			Description: description,
		})
	}
	return items, nil
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users   map[string]*models.User
	byID    map[int64]*models.User
	created *models.User
	err     error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[email]
	return ok, nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer
type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) GenerateToken(userID int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}
