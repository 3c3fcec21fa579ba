package models

import "time"

// Review is a user review embedded in a lesson. The author is immutable and
// is the only subject allowed to remove the review.
type Review struct {
	ID        string    `json:"id"`
	LessonID  int64     `json:"lessonId"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddReviewRequest represents a request to add a review
type AddReviewRequest struct {
	Text string `json:"text"`
}
