package service

import (
	"errors"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrProblemAlreadySolved = errors.New("problem already solved")

// SolvingService grades submitted answers. Multiple-choice answers are graded
// locally; short-answer and descriptive problems go through the Gemini
// service (which degrades to local grading on failure).
type SolvingService struct {
	solvedRepo    repository.ISolvedProblemRepository
	problemRepo   repository.IProblemRepository
	sessionRepo   repository.ISessionRepository
	geminiService *GeminiService
}

func NewSolvingService(solvedRepo repository.ISolvedProblemRepository, problemRepo repository.IProblemRepository,
	sessionRepo repository.ISessionRepository, geminiService *GeminiService) *SolvingService {
	return &SolvingService{
		solvedRepo:    solvedRepo,
		problemRepo:   problemRepo,
		sessionRepo:   sessionRepo,
		geminiService: geminiService,
	}
}

// SubmitAnswer grades a free-practice answer (no session).
func (s *SolvingService) SubmitAnswer(userID, problemID int, userAnswer string) (*model.SolvedProblem, error) {
	problem, err := s.problemRepo.GetProblemByID(problemID)
	if err != nil {
		return nil, err
	}

	if userID != 0 {
		solved, err := s.solvedRepo.ExistsByUserAndProblem(userID, problemID)
		if err != nil {
			return nil, err
		}
		if solved {
			return nil, ErrProblemAlreadySolved
		}
	}

	return s.processAnswer(userID, problem, 0, userAnswer)
}

// SubmitAnswerInSession grades an answer inside a challenge session and bumps
// the session's correct count on success.
func (s *SolvingService) SubmitAnswerInSession(sessionID, problemID int, userAnswer string) (*model.SolvedProblem, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.GetProblemByID(problemID)
	if err != nil {
		return nil, err
	}

	solved, err := s.solvedRepo.ExistsBySessionAndProblem(sessionID, problemID)
	if err != nil {
		return nil, err
	}
	if solved {
		return nil, ErrProblemAlreadySolved
	}

	result, err := s.processAnswer(session.UserID, problem, sessionID, userAnswer)
	if err != nil {
		return nil, err
	}

	if result.IsCorrect {
		if err := s.sessionRepo.IncrementCorrectCount(sessionID); err != nil {
			logger.Log.WithError(err).WithField("session_id", sessionID).Error("Failed to bump correct count")
		}
	}

	return result, nil
}

func (s *SolvingService) processAnswer(userID int, problem *model.Problem, sessionID int, userAnswer string) (*model.SolvedProblem, error) {
	var isCorrect bool
	var score int
	var aiFeedback string

	if problem.ProblemType == model.ProblemTypeMultipleChoice {
		isCorrect = strings.EqualFold(strings.TrimSpace(problem.Answer), strings.TrimSpace(userAnswer))
		if isCorrect {
			score = 100
		}
		aiFeedback = s.geminiService.GenerateExplanation(problem, userAnswer, isCorrect)
	} else {
		grading := s.geminiService.GradeAnswer(problem, userAnswer)
		isCorrect = grading.IsCorrect
		score = grading.Score
		aiFeedback = grading.Feedback
	}

	sp := &model.SolvedProblem{
		UserID:     userID,
		ProblemID:  problem.ID,
		SessionID:  sessionID,
		UserAnswer: userAnswer,
		IsCorrect:  isCorrect,
		Score:      score,
		AIFeedback: aiFeedback,
	}
	if err := s.solvedRepo.CreateSolvedProblem(sp); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"problem_id": problem.ID,
		"is_correct": isCorrect,
		"score":      score,
	}).Info("Answer graded")

	return sp, nil
}
