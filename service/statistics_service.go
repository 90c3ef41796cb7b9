package service

import (
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"math"
	"sort"
)

// OverallStats summarizes one user's progress across all problems.
type OverallStats struct {
	TotalProblems  int64   `json:"total_problems"`
	SolvedProblems int64   `json:"solved_problems"`
	CorrectCount   int64   `json:"correct_count"`
	IncorrectCount int64   `json:"incorrect_count"`
	Accuracy       float64 `json:"accuracy"`
	AverageScore   float64 `json:"average_score"`
}

// ProgressStats is coverage and accuracy for one category/difficulty pair.
type ProgressStats struct {
	Category     model.Category   `json:"category"`
	Difficulty   model.Difficulty `json:"difficulty"`
	TotalCount   int64            `json:"total_count"`
	SolvedCount  int64            `json:"solved_count"`
	CorrectCount int64            `json:"correct_count"`
	Accuracy     float64          `json:"accuracy"`
}

// CategoryStats aggregates one category with a per-difficulty breakdown.
type CategoryStats struct {
	Category        model.Category                     `json:"category"`
	TotalProblems   int64                              `json:"total_problems"`
	SolvedProblems  int64                              `json:"solved_problems"`
	CorrectCount    int64                              `json:"correct_count"`
	Accuracy        float64                            `json:"accuracy"`
	DifficultyStats map[model.Difficulty]ProgressStats `json:"difficulty_stats"`
}

// StatisticsService computes user statistics from graded answer records.
type StatisticsService struct {
	solvedRepo  repository.ISolvedProblemRepository
	problemRepo repository.IProblemRepository
}

func NewStatisticsService(solvedRepo repository.ISolvedProblemRepository, problemRepo repository.IProblemRepository) *StatisticsService {
	return &StatisticsService{solvedRepo: solvedRepo, problemRepo: problemRepo}
}

var allCategories = []model.Category{
	model.CategoryJava, model.CategorySpring, model.CategoryDatabase, model.CategoryNetwork, model.CategoryOS,
}

var allDifficulties = []model.Difficulty{
	model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard,
}

// GetOverallStats computes totals, accuracy, and average score for a user.
func (s *StatisticsService) GetOverallStats(userID int) (*OverallStats, error) {
	totalProblems, err := s.problemRepo.CountAll()
	if err != nil {
		return nil, err
	}

	solved, err := s.solvedRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	var correct int64
	var scoreSum int
	for _, sp := range solved {
		if sp.IsCorrect {
			correct++
		}
		scoreSum += sp.Score
	}

	solvedCount := int64(len(solved))
	stats := &OverallStats{
		TotalProblems:  totalProblems,
		SolvedProblems: solvedCount,
		CorrectCount:   correct,
		IncorrectCount: solvedCount - correct,
	}
	if solvedCount > 0 {
		stats.Accuracy = round2(float64(correct) * 100.0 / float64(solvedCount))
		stats.AverageScore = round2(float64(scoreSum) / float64(solvedCount))
	}
	return stats, nil
}

// GetCategoryStats breaks the user's record down per category and difficulty.
func (s *StatisticsService) GetCategoryStats(userID int) ([]*CategoryStats, error) {
	solved, err := s.solvedRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	var result []*CategoryStats
	for _, category := range allCategories {
		stats := &CategoryStats{
			Category:        category,
			DifficultyStats: make(map[model.Difficulty]ProgressStats),
		}

		for _, difficulty := range allDifficulties {
			total, err := s.problemRepo.CountProblems(category, difficulty)
			if err != nil {
				return nil, err
			}
			stats.TotalProblems += total

			progress := ProgressStats{Category: category, Difficulty: difficulty, TotalCount: total}
			for _, sp := range solved {
				if sp.Category != category || sp.Difficulty != difficulty {
					continue
				}
				progress.SolvedCount++
				if sp.IsCorrect {
					progress.CorrectCount++
				}
			}
			if progress.SolvedCount > 0 {
				progress.Accuracy = round2(float64(progress.CorrectCount) * 100.0 / float64(progress.SolvedCount))
			}
			stats.DifficultyStats[difficulty] = progress
			stats.SolvedProblems += progress.SolvedCount
			stats.CorrectCount += progress.CorrectCount
		}

		if stats.SolvedProblems > 0 {
			stats.Accuracy = round2(float64(stats.CorrectCount) * 100.0 / float64(stats.SolvedProblems))
		}
		result = append(result, stats)
	}

	return result, nil
}

// GetWeakPoints ranks the category/difficulty pairs the user has attempted,
// lowest accuracy first. Unattempted pairs are excluded.
func (s *StatisticsService) GetWeakPoints(userID int) ([]ProgressStats, error) {
	solved, err := s.solvedRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	byPair := make(map[model.Category]map[model.Difficulty]*ProgressStats)
	for _, sp := range solved {
		if byPair[sp.Category] == nil {
			byPair[sp.Category] = make(map[model.Difficulty]*ProgressStats)
		}
		progress := byPair[sp.Category][sp.Difficulty]
		if progress == nil {
			progress = &ProgressStats{Category: sp.Category, Difficulty: sp.Difficulty}
			byPair[sp.Category][sp.Difficulty] = progress
		}
		progress.SolvedCount++
		if sp.IsCorrect {
			progress.CorrectCount++
		}
	}

	var weakPoints []ProgressStats
	for _, difficulties := range byPair {
		for _, progress := range difficulties {
			progress.Accuracy = round2(float64(progress.CorrectCount) * 100.0 / float64(progress.SolvedCount))
			weakPoints = append(weakPoints, *progress)
		}
	}

	sort.Slice(weakPoints, func(i, j int) bool {
		return weakPoints[i].Accuracy < weakPoints[j].Accuracy
	})
	return weakPoints, nil
}

// GetWrongAnswers returns the user's incorrect submissions, newest first.
func (s *StatisticsService) GetWrongAnswers(userID int) ([]*model.SolvedProblem, error) {
	return s.solvedRepo.GetWrongAnswersByUserID(userID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
