package repository

import (
	"database/sql"
	"go-quiz-api/model"
)

// IProblemRepository defines the contract for problem database operations.
type IProblemRepository interface {
	CreateProblem(problem *model.Problem) error
	GetProblemByID(id int) (*model.Problem, error)
	GetProblems(category model.Category, difficulty model.Difficulty) ([]*model.Problem, error)
	GetRandomProblems(category model.Category, difficulty model.Difficulty, count int) ([]*model.Problem, error)
	CountProblems(category model.Category, difficulty model.Difficulty) (int64, error)
	CountAll() (int64, error)
	UpdateProblem(problem *model.Problem) error
	DeleteProblem(id int) error
}

type ProblemRepository struct {
	DB *sql.DB
}

func NewProblemRepository(db *sql.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

const problemColumns = `id, problem_type, category, difficulty, question, answer, COALESCE(explanation, ''), COALESCE(choices_json, '')`

func scanProblem(row interface{ Scan(...interface{}) error }) (*model.Problem, error) {
	p := &model.Problem{}
	err := row.Scan(&p.ID, &p.ProblemType, &p.Category, &p.Difficulty, &p.Question, &p.Answer, &p.Explanation, &p.ChoicesJSON)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProblemRepository) CreateProblem(problem *model.Problem) error {
	query := `INSERT INTO problems (problem_type, category, difficulty, question, answer, explanation, choices_json)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, '')) RETURNING id`
	return r.DB.QueryRow(query, problem.ProblemType, problem.Category, problem.Difficulty,
		problem.Question, problem.Answer, problem.Explanation, problem.ChoicesJSON).Scan(&problem.ID)
}

func (r *ProblemRepository) GetProblemByID(id int) (*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = $1`
	return scanProblem(r.DB.QueryRow(query, id))
}

// GetProblems lists problems, optionally filtered. Empty category or
// difficulty matches everything.
func (r *ProblemRepository) GetProblems(category model.Category, difficulty model.Difficulty) ([]*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems
		WHERE ($1 = '' OR category = $1) AND ($2 = '' OR difficulty = $2) ORDER BY id`
	rows, err := r.DB.Query(query, string(category), string(difficulty))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProblems(rows)
}

// GetRandomProblems draws count problems at random from one category/difficulty pair.
func (r *ProblemRepository) GetRandomProblems(category model.Category, difficulty model.Difficulty, count int) ([]*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems
		WHERE category = $1 AND difficulty = $2 ORDER BY RANDOM() LIMIT $3`
	rows, err := r.DB.Query(query, category, difficulty, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProblems(rows)
}

func (r *ProblemRepository) CountProblems(category model.Category, difficulty model.Difficulty) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM problems WHERE category = $1 AND difficulty = $2`
	err := r.DB.QueryRow(query, category, difficulty).Scan(&count)
	return count, err
}

func (r *ProblemRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM problems`).Scan(&count)
	return count, err
}

func (r *ProblemRepository) UpdateProblem(problem *model.Problem) error {
	query := `UPDATE problems SET problem_type = $1, category = $2, difficulty = $3,
		question = $4, answer = $5, explanation = NULLIF($6, ''), choices_json = NULLIF($7, '')
		WHERE id = $8`
	res, err := r.DB.Exec(query, problem.ProblemType, problem.Category, problem.Difficulty,
		problem.Question, problem.Answer, problem.Explanation, problem.ChoicesJSON, problem.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProblemRepository) DeleteProblem(id int) error {
	res, err := r.DB.Exec(`DELETE FROM problems WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collectProblems(rows *sql.Rows) ([]*model.Problem, error) {
	var problems []*model.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}
