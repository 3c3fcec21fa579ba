package models

import "time"

// Difficulty is the ordered difficulty tier of a lesson
type Difficulty string

// Difficulty tiers, ordered beginner < intermediate < advanced
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Rank returns the ordinal position of the difficulty tier, or -1 for an
// unknown value
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return -1
	}
}

// Valid reports whether the difficulty is one of the known tiers
func (d Difficulty) Valid() bool {
	return d.Rank() >= 0
}

// TextFragment is a piece of source text with its translation
type TextFragment struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// MediaItem pairs a stored media reference with its description
type MediaItem struct {
	File        string `json:"file"`
	Description string `json:"description"`
}

// VocabularyEntry is a word with its translation
type VocabularyEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// QuizQuestion is a single question with its options and the index of the
// correct option
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// LessonContent is the fixed record of the four ordered content sequences of
// a lesson
type LessonContent struct {
	TextFragments []TextFragment `json:"text_fragments"`
	Audio         []MediaItem    `json:"audio"`
	Video         []MediaItem    `json:"video"`
	Pictures      []MediaItem    `json:"pictures"`
}

// Lesson is the central aggregate: metadata, embedded content, vocabulary,
// quiz, plus likes and reviews loaded alongside it
type Lesson struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Language    string            `json:"language"`
	Difficulty  Difficulty        `json:"difficulty_level"`
	Content     LessonContent     `json:"content"`
	Vocabulary  []VocabularyEntry `json:"vocabulary"`
	Quiz        []QuizQuestion    `json:"quiz"`
	CreatedBy   int64             `json:"createdBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	LikesCount  int               `json:"likesCount"`
	Reviews     []Review          `json:"reviews,omitempty"`
}

// LessonSummary is a lesson projection for list responses
type LessonSummary struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Difficulty  Difficulty `json:"difficulty_level"`
	CreatedBy   int64      `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	LikesCount  int        `json:"likesCount"`
}

// LessonFilter holds the filtering and sorting parameters for lesson lists.
// When both sort keys are requested, difficulty rank is applied first.
type LessonFilter struct {
	Language         string
	Difficulty       Difficulty
	SortByDifficulty bool
	SortByCreatedAt  bool
	SortDesc         bool
}

// CreateLessonRequest represents a request to create a lesson. Text
// fragments arrive in Content; the media sequences of Content are assembled
// server-side from the uploaded files and are ignored if supplied here.
type CreateLessonRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Language    string            `json:"language"`
	Difficulty  Difficulty        `json:"difficulty_level"`
	Content     LessonContent     `json:"content"`
	Vocabulary  []VocabularyEntry `json:"vocabulary"`
	Quiz        []QuizQuestion    `json:"quiz"`
}

// UpdateLessonRequest represents a request to update a lesson. The update is
// a wholesale replacement of metadata, content, vocabulary and quiz; creator,
// likes and reviews are never touched.
type UpdateLessonRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Language    string            `json:"language"`
	Difficulty  Difficulty        `json:"difficulty_level"`
	Content     LessonContent     `json:"content"`
	Vocabulary  []VocabularyEntry `json:"vocabulary"`
	Quiz        []QuizQuestion    `json:"quiz"`
}

// LikeResult reports the outcome of a like attempt. A repeated like is not
// an error: it leaves the count unchanged and sets AlreadyLiked.
type LikeResult struct {
	LikesCount   int  `json:"likesCount"`
	AlreadyLiked bool `json:"alreadyLiked"`
}

// LikeStatus reports the like count of a lesson. Liked is set only for
// authenticated callers and omitted for anonymous ones.
type LikeStatus struct {
	LikesCount int   `json:"likesCount"`
	Liked      *bool `json:"liked,omitempty"`
}

// QuizSubmission maps question index to the chosen option index
type QuizSubmission struct {
	Answers map[int]int `json:"answers"`
}

// QuizEvaluation is the scoring outcome of a complete quiz submission
type QuizEvaluation struct {
	Results []bool `json:"results"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}
