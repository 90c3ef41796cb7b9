package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"time"
)

// ProblemService handles problem reads and admin mutations. Problem lists are
// served through a cache-aside Redis layer keyed by category/difficulty;
// every mutation drops the whole problem cache.
type ProblemService struct {
	problemRepo repository.IProblemRepository
	cache       ICacheClient
}

func NewProblemService(problemRepo repository.IProblemRepository, cache ICacheClient) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, cache: cache}
}

func problemCacheKey(category model.Category, difficulty model.Difficulty) string {
	return fmt.Sprintf("problems:%s:%s", category, difficulty)
}

func (s *ProblemService) GetProblemByID(id int) (*model.Problem, error) {
	return s.problemRepo.GetProblemByID(id)
}

// GetProblems lists problems for the given filters, cache-aside.
func (s *ProblemService) GetProblems(category model.Category, difficulty model.Difficulty) ([]*model.Problem, error) {
	ctx := context.Background()
	cacheKey := problemCacheKey(category, difficulty)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var problems []*model.Problem
			if err := json.Unmarshal([]byte(cached), &problems); err == nil {
				return problems, nil
			}
		}
	}

	problems, err := s.problemRepo.GetProblems(category, difficulty)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(problems); err == nil {
			s.cache.Set(ctx, cacheKey, data, 10*time.Minute)
		}
	}

	return problems, nil
}

func (s *ProblemService) GetRandomProblems(category model.Category, difficulty model.Difficulty, count int) ([]*model.Problem, error) {
	return s.problemRepo.GetRandomProblems(category, difficulty, count)
}

func (s *ProblemService) CountProblems(category model.Category, difficulty model.Difficulty) (int64, error) {
	return s.problemRepo.CountProblems(category, difficulty)
}

func (s *ProblemService) CountAll() (int64, error) {
	return s.problemRepo.CountAll()
}

// CreateProblem creates a problem (admin only).
func (s *ProblemService) CreateProblem(req *model.CreateProblemRequest) (*model.Problem, error) {
	problem := &model.Problem{
		ProblemType: model.ProblemType(req.ProblemType),
		Category:    model.Category(req.Category),
		Difficulty:  model.Difficulty(req.Difficulty),
		Question:    req.Question,
		Answer:      req.Answer,
		Explanation: req.Explanation,
	}
	problem.SetChoices(req.Choices)

	if err := s.problemRepo.CreateProblem(problem); err != nil {
		return nil, err
	}

	s.invalidateCache(problem.Category, problem.Difficulty)
	logger.Log.WithField("problem_id", problem.ID).Info("Problem created")
	return problem, nil
}

// UpdateProblem applies non-zero fields of the request to an existing problem.
func (s *ProblemService) UpdateProblem(id int, req *model.UpdateProblemRequest) (*model.Problem, error) {
	problem, err := s.problemRepo.GetProblemByID(id)
	if err != nil {
		return nil, err
	}

	oldCategory, oldDifficulty := problem.Category, problem.Difficulty

	if req.ProblemType != "" {
		problem.ProblemType = model.ProblemType(req.ProblemType)
	}
	if req.Category != "" {
		problem.Category = model.Category(req.Category)
	}
	if req.Difficulty != "" {
		problem.Difficulty = model.Difficulty(req.Difficulty)
	}
	if req.Question != "" {
		problem.Question = req.Question
	}
	if req.Answer != "" {
		problem.Answer = req.Answer
	}
	if req.Explanation != "" {
		problem.Explanation = req.Explanation
	}
	if req.Choices != nil {
		problem.SetChoices(req.Choices)
	}

	if err := s.problemRepo.UpdateProblem(problem); err != nil {
		return nil, err
	}

	s.invalidateCache(oldCategory, oldDifficulty)
	s.invalidateCache(problem.Category, problem.Difficulty)
	return problem, nil
}

func (s *ProblemService) DeleteProblem(id int) error {
	problem, err := s.problemRepo.GetProblemByID(id)
	if err != nil {
		return err
	}
	if err := s.problemRepo.DeleteProblem(id); err != nil {
		return err
	}
	s.invalidateCache(problem.Category, problem.Difficulty)
	return nil
}

func (s *ProblemService) invalidateCache(category model.Category, difficulty model.Difficulty) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	// Filtered and unfiltered list keys can all contain this problem.
	s.cache.Del(ctx,
		problemCacheKey(category, difficulty),
		problemCacheKey(category, ""),
		problemCacheKey("", difficulty),
		problemCacheKey("", ""),
	)
}
