package model

import "time"

// SolvedProblem records one graded answer, either free-form practice
// (SessionID == 0) or inside a challenge session.
type SolvedProblem struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ProblemID  int       `json:"problem_id"`
	SessionID  int       `json:"session_id,omitempty"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	AIFeedback string    `json:"ai_feedback,omitempty"`
	SolvedAt   time.Time `json:"solved_at"`

	// Joined columns, populated by statistics queries only.
	Category   Category   `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}
