package models

import "time"

type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Topic struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Flashcard struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionEvent is published when a game session starts or finishes.
type SessionEvent struct {
	SessionID  string          `json:"session_id"`
	UserID     string          `json:"user_id"`
	TopicID    string          `json:"topic_id"`
	WordCount  int             `json:"word_count"`
	OccurredAt time.Time       `json:"occurred_at"`
	Summary    *SessionSummary `json:"summary,omitempty"`
}

type SessionSummary struct {
	Outcome        string  `json:"outcome"`
	Score          int     `json:"score"`
	Attempts       int     `json:"attempts"`
	Correct        int     `json:"correct"`
	Accuracy       float64 `json:"accuracy"`
	ElapsedSeconds int     `json:"elapsed_seconds"`
	Elapsed        string  `json:"elapsed"`
	AccuracyRating string  `json:"accuracy_rating"`
	SpeedRating    string  `json:"speed_rating"`
	Verdict        string  `json:"verdict"`
	FinalScore     int     `json:"final_score"`
	WordsRemaining int     `json:"words_remaining"`
}
