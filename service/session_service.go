package service

import (
	"errors"
	"fmt"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"time"
)

var (
	ErrInsufficientProblems    = errors.New("not enough problems for the requested session")
	ErrSessionAlreadyCompleted = errors.New("session already completed")
)

// SessionService handles challenge sessions: a fixed-size run of problems
// from one category/difficulty pair.
type SessionService struct {
	sessionRepo    repository.ISessionRepository
	solvedRepo     repository.ISolvedProblemRepository
	problemService *ProblemService
}

func NewSessionService(sessionRepo repository.ISessionRepository, solvedRepo repository.ISolvedProblemRepository, problemService *ProblemService) *SessionService {
	return &SessionService{
		sessionRepo:    sessionRepo,
		solvedRepo:     solvedRepo,
		problemService: problemService,
	}
}

// CreateSession starts a new session after checking that enough problems
// exist for the requested category and difficulty.
func (s *SessionService) CreateSession(userID int, req *model.CreateSessionRequest) (*model.Session, error) {
	totalQuestions := req.TotalQuestions
	if totalQuestions <= 0 {
		totalQuestions = 10
	}

	category := model.Category(req.Category)
	difficulty := model.Difficulty(req.Difficulty)

	available, err := s.problemService.CountProblems(category, difficulty)
	if err != nil {
		return nil, err
	}
	if available < int64(totalQuestions) {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientProblems, totalQuestions, available)
	}

	session := &model.Session{
		UserID:           userID,
		Category:         category,
		Difficulty:       difficulty,
		TotalQuestions:   totalQuestions,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if err := s.sessionRepo.CreateSession(session); err != nil {
		return nil, err
	}

	logger.Log.WithField("session_id", session.ID).Info("Challenge session created")
	return session, nil
}

func (s *SessionService) GetSession(id int) (*model.Session, error) {
	return s.sessionRepo.GetSessionByID(id)
}

// GetSessionProblems draws the session's problem set.
func (s *SessionService) GetSessionProblems(id int) ([]*model.Problem, error) {
	session, err := s.sessionRepo.GetSessionByID(id)
	if err != nil {
		return nil, err
	}
	return s.problemService.GetRandomProblems(session.Category, session.Difficulty, session.TotalQuestions)
}

// CompleteSession marks the session finished. Completing twice is a conflict.
func (s *SessionService) CompleteSession(id int) error {
	session, err := s.sessionRepo.GetSessionByID(id)
	if err != nil {
		return err
	}
	if session.IsCompleted() {
		return ErrSessionAlreadyCompleted
	}
	return s.sessionRepo.CompleteSession(id, time.Now())
}

func (s *SessionService) GetSessionSolvedProblems(id int) ([]*model.SolvedProblem, error) {
	return s.solvedRepo.GetBySessionID(id)
}

func (s *SessionService) GetUserSessions(userID int) ([]*model.Session, error) {
	return s.sessionRepo.GetSessionsByUserID(userID)
}

func (s *SessionService) DeleteSession(id int) error {
	return s.sessionRepo.DeleteSession(id)
}
