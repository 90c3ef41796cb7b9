package model

// SignUpRequest is the payload for POST /api/users/sign-up.
type SignUpRequest struct {
	LoginID  string `json:"loginId" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"omitempty,max=50"`
}

// SignInRequest is the payload for POST /api/users/sign-in.
type SignInRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateProblemRequest is the admin payload for creating a problem.
type CreateProblemRequest struct {
	ProblemType string   `json:"problem_type" validate:"required,oneof=MULTIPLE_CHOICE SHORT_ANSWER DESCRIPTIVE"`
	Category    string   `json:"category" validate:"required,oneof=JAVA SPRING DATABASE NETWORK OS"`
	Difficulty  string   `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Question    string   `json:"question" validate:"required"`
	Answer      string   `json:"answer" validate:"required"`
	Explanation string   `json:"explanation"`
	Choices     []string `json:"choices" validate:"omitempty,min=2"`
}

// UpdateProblemRequest is the admin payload for updating a problem. All
// fields are optional; zero values leave the column untouched.
type UpdateProblemRequest struct {
	ProblemType string   `json:"problem_type" validate:"omitempty,oneof=MULTIPLE_CHOICE SHORT_ANSWER DESCRIPTIVE"`
	Category    string   `json:"category" validate:"omitempty,oneof=JAVA SPRING DATABASE NETWORK OS"`
	Difficulty  string   `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Choices     []string `json:"choices"`
}

// CreateSessionRequest starts a new challenge session.
type CreateSessionRequest struct {
	Category         string `json:"category" validate:"required,oneof=JAVA SPRING DATABASE NETWORK OS"`
	Difficulty       string `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	TotalQuestions   int    `json:"total_questions" validate:"omitempty,min=1,max=50"`
	TimeLimitMinutes int    `json:"time_limit_minutes" validate:"omitempty,min=1"`
}

// SubmitAnswerRequest grades one answer.
type SubmitAnswerRequest struct {
	ProblemID  int    `json:"problem_id" validate:"required"`
	UserAnswer string `json:"user_answer" validate:"required"`
}
