package model

import "time"

// Session is one challenge run: a fixed number of questions drawn from a
// single category/difficulty pair.
type Session struct {
	ID               int        `json:"id"`
	UserID           int        `json:"user_id"`
	Category         Category   `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectCount     int        `json:"correct_count"`
	TimeLimitMinutes int        `json:"time_limit_minutes,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func (s *Session) IsCompleted() bool {
	return s.CompletedAt != nil
}
