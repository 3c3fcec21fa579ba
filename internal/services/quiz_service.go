package services

import (
	"context"
	"fmt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// QuizLessonReader defines the lesson read access needed to evaluate a quiz
// submission
type QuizLessonReader interface {
	// GetByID retrieves a lesson by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
}

type quizService struct {
	lessonRepo QuizLessonReader
}

// NewQuizService creates a new quiz service
func NewQuizService(lessonRepo QuizLessonReader) *quizService {
	return &quizService{
		lessonRepo: lessonRepo,
	}
}

// EvaluateSubmission scores a quiz submission against the quiz of a lesson.
// The submission must be complete: exactly one answer for every question
// index. Evaluation is read-only with respect to the lesson.
func (s *quizService) EvaluateSubmission(ctx context.Context, lessonID int64, submission *models.QuizSubmission) (*models.QuizEvaluation, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if len(lesson.Quiz) == 0 {
		return nil, fmt.Errorf("lesson %d has no quiz: %w", lessonID, models.ErrValidation)
	}

	return evaluateQuiz(lesson.Quiz, submission)
}

// evaluateQuiz checks completeness and scores the answers in question order
func evaluateQuiz(quiz []models.QuizQuestion, submission *models.QuizSubmission) (*models.QuizEvaluation, error) {
	if submission == nil || len(submission.Answers) != len(quiz) {
		return nil, fmt.Errorf("submission must answer every question: %w", models.ErrValidation)
	}

	results := make([]bool, len(quiz))
	score := 0
	for i, question := range quiz {
		answer, ok := submission.Answers[i]
		if !ok {
			return nil, fmt.Errorf("question %d is unanswered: %w", i, models.ErrValidation)
		}
		if answer < 0 || answer >= len(question.Options) {
			return nil, fmt.Errorf("answer %d for question %d is out of range: %w", answer, i, models.ErrValidation)
		}

		if answer == question.CorrectAnswer {
			results[i] = true
			score++
		}
	}

	return &models.QuizEvaluation{
		Results: results,
		Score:   score,
		Total:   len(quiz),
	}, nil
}
