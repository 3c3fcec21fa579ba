package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

func quizLesson() *models.Lesson {
	return &models.Lesson{
		ID: 42,
		Quiz: []models.QuizQuestion{
			{Question: "Q0", Options: []string{"a", "b"}, CorrectAnswer: 0},
			{Question: "Q1", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
	}
}

func TestQuizService_EvaluateSubmission(t *testing.T) {
	tests := []struct {
		name          string
		answers       map[int]int
		expectedError error
		expectedScore int
		expected      []bool
	}{
		{
			name:          "all correct",
			answers:       map[int]int{0: 0, 1: 2, 2: 1},
			expectedScore: 3,
			expected:      []bool{true, true, true},
		},
		{
			name:          "partially correct",
			answers:       map[int]int{0: 0, 1: 1, 2: 0},
			expectedScore: 1,
			expected:      []bool{true, false, false},
		},
		{
			name:          "all wrong",
			answers:       map[int]int{0: 1, 1: 0, 2: 0},
			expectedScore: 0,
			expected:      []bool{false, false, false},
		},
		{
			name:          "incomplete submission",
			answers:       map[int]int{0: 0, 1: 2},
			expectedError: models.ErrValidation,
		},
		{
			name:          "wrong question index",
			answers:       map[int]int{0: 0, 1: 2, 5: 1},
			expectedError: models.ErrValidation,
		},
		{
			name:          "answer option out of range",
			answers:       map[int]int{0: 0, 1: 3, 2: 1},
			expectedError: models.ErrValidation,
		},
		{
			name:          "negative answer option",
			answers:       map[int]int{0: -1, 1: 2, 2: 1},
			expectedError: models.ErrValidation,
		},
		{
			name:          "empty submission",
			answers:       map[int]int{},
			expectedError: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuizService(&mockLessonRepository{lessons: map[int64]*models.Lesson{42: quizLesson()}})

			evaluation, err := svc.EvaluateSubmission(context.Background(), 42, &models.QuizSubmission{Answers: tt.answers})

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedScore, evaluation.Score)
				assert.Equal(t, 3, evaluation.Total)
				assert.Equal(t, tt.expected, evaluation.Results)
			}
		})
	}
}

func TestQuizService_EvaluateSubmission_LessonNotFound(t *testing.T) {
	svc := NewQuizService(&mockLessonRepository{})

	_, err := svc.EvaluateSubmission(context.Background(), 42, &models.QuizSubmission{Answers: map[int]int{0: 0}})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQuizService_EvaluateSubmission_NoQuiz(t *testing.T) {
	svc := NewQuizService(&mockLessonRepository{lessons: map[int64]*models.Lesson{42: {ID: 42}}})

	_, err := svc.EvaluateSubmission(context.Background(), 42, &models.QuizSubmission{Answers: map[int]int{}})

	assert.ErrorIs(t, err, models.ErrValidation)
}
