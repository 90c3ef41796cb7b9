package repository

import (
	"database/sql"
	"go-quiz-api/model"
)

// ISolvedProblemRepository defines the contract for graded answer records.
type ISolvedProblemRepository interface {
	CreateSolvedProblem(sp *model.SolvedProblem) error
	ExistsByUserAndProblem(userID, problemID int) (bool, error)
	ExistsBySessionAndProblem(sessionID, problemID int) (bool, error)
	GetByUserID(userID int) ([]*model.SolvedProblem, error)
	GetBySessionID(sessionID int) ([]*model.SolvedProblem, error)
	GetWrongAnswersByUserID(userID int) ([]*model.SolvedProblem, error)
}

type SolvedProblemRepository struct {
	DB *sql.DB
}

func NewSolvedProblemRepository(db *sql.DB) *SolvedProblemRepository {
	return &SolvedProblemRepository{DB: db}
}

// Joined with problems so statistics can group by category/difficulty
// without a second round trip.
const solvedColumns = `sp.id, COALESCE(sp.user_id, 0), sp.problem_id, COALESCE(sp.session_id, 0),
	COALESCE(sp.user_answer, ''), sp.is_correct, sp.score, COALESCE(sp.ai_feedback, ''), sp.solved_at,
	p.category, p.difficulty`

func scanSolved(row interface{ Scan(...interface{}) error }) (*model.SolvedProblem, error) {
	sp := &model.SolvedProblem{}
	err := row.Scan(&sp.ID, &sp.UserID, &sp.ProblemID, &sp.SessionID, &sp.UserAnswer,
		&sp.IsCorrect, &sp.Score, &sp.AIFeedback, &sp.SolvedAt, &sp.Category, &sp.Difficulty)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

func (r *SolvedProblemRepository) CreateSolvedProblem(sp *model.SolvedProblem) error {
	query := `INSERT INTO solved_problems (user_id, problem_id, session_id, user_answer, is_correct, score, ai_feedback)
		VALUES (NULLIF($1, 0), $2, NULLIF($3, 0), $4, $5, $6, NULLIF($7, '')) RETURNING id, solved_at`
	return r.DB.QueryRow(query, sp.UserID, sp.ProblemID, sp.SessionID, sp.UserAnswer,
		sp.IsCorrect, sp.Score, sp.AIFeedback).Scan(&sp.ID, &sp.SolvedAt)
}

func (r *SolvedProblemRepository) ExistsByUserAndProblem(userID, problemID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM solved_problems WHERE user_id = $1 AND problem_id = $2 AND session_id IS NULL)`
	err := r.DB.QueryRow(query, userID, problemID).Scan(&exists)
	return exists, err
}

func (r *SolvedProblemRepository) ExistsBySessionAndProblem(sessionID, problemID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM solved_problems WHERE session_id = $1 AND problem_id = $2)`
	err := r.DB.QueryRow(query, sessionID, problemID).Scan(&exists)
	return exists, err
}

func (r *SolvedProblemRepository) GetByUserID(userID int) ([]*model.SolvedProblem, error) {
	query := `SELECT ` + solvedColumns + ` FROM solved_problems sp
		JOIN problems p ON p.id = sp.problem_id WHERE sp.user_id = $1 ORDER BY sp.solved_at DESC`
	return r.querySolved(query, userID)
}

func (r *SolvedProblemRepository) GetBySessionID(sessionID int) ([]*model.SolvedProblem, error) {
	query := `SELECT ` + solvedColumns + ` FROM solved_problems sp
		JOIN problems p ON p.id = sp.problem_id WHERE sp.session_id = $1 ORDER BY sp.solved_at`
	return r.querySolved(query, sessionID)
}

func (r *SolvedProblemRepository) GetWrongAnswersByUserID(userID int) ([]*model.SolvedProblem, error) {
	query := `SELECT ` + solvedColumns + ` FROM solved_problems sp
		JOIN problems p ON p.id = sp.problem_id WHERE sp.user_id = $1 AND sp.is_correct = FALSE ORDER BY sp.solved_at DESC`
	return r.querySolved(query, userID)
}

func (r *SolvedProblemRepository) querySolved(query string, arg interface{}) ([]*model.SolvedProblem, error) {
	rows, err := r.DB.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var solved []*model.SolvedProblem
	for rows.Next() {
		sp, err := scanSolved(rows)
		if err != nil {
			return nil, err
		}
		solved = append(solved, sp)
	}
	return solved, rows.Err()
}
