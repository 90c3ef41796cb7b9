package repository

import (
	"database/sql"
	"go-quiz-api/model"
	"time"
)

// ISessionRepository defines the contract for challenge session operations.
type ISessionRepository interface {
	CreateSession(session *model.Session) error
	GetSessionByID(id int) (*model.Session, error)
	GetSessionsByUserID(userID int) ([]*model.Session, error)
	CompleteSession(id int, completedAt time.Time) error
	IncrementCorrectCount(id int) error
	DeleteSession(id int) error
}

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

const sessionColumns = `id, COALESCE(user_id, 0), category, difficulty, total_questions, correct_count, COALESCE(time_limit_minutes, 0), started_at, completed_at`

func scanSession(row interface{ Scan(...interface{}) error }) (*model.Session, error) {
	s := &model.Session{}
	err := row.Scan(&s.ID, &s.UserID, &s.Category, &s.Difficulty, &s.TotalQuestions,
		&s.CorrectCount, &s.TimeLimitMinutes, &s.StartedAt, &s.CompletedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) CreateSession(session *model.Session) error {
	query := `INSERT INTO sessions (user_id, category, difficulty, total_questions, time_limit_minutes)
		VALUES (NULLIF($1, 0), $2, $3, $4, NULLIF($5, 0)) RETURNING id, started_at`
	return r.DB.QueryRow(query, session.UserID, session.Category, session.Difficulty,
		session.TotalQuestions, session.TimeLimitMinutes).Scan(&session.ID, &session.StartedAt)
}

func (r *SessionRepository) GetSessionByID(id int) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	return scanSession(r.DB.QueryRow(query, id))
}

func (r *SessionRepository) GetSessionsByUserID(userID int) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = $1 ORDER BY started_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) CompleteSession(id int, completedAt time.Time) error {
	res, err := r.DB.Exec(`UPDATE sessions SET completed_at = $1 WHERE id = $2`, completedAt, id)
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

func (r *SessionRepository) IncrementCorrectCount(id int) error {
	_, err := r.DB.Exec(`UPDATE sessions SET correct_count = correct_count + 1 WHERE id = $1`, id)
	return err
}

func (r *SessionRepository) DeleteSession(id int) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return err
}
