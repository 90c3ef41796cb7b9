package service

import (
	"go-quiz-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSolvedRepoForStatsSvc struct{ mock.Mock }

func (m *mockSolvedRepoForStatsSvc) GetByUserID(userID int) ([]*model.SolvedProblem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SolvedProblem), args.Error(1)
}

func (m *mockSolvedRepoForStatsSvc) GetWrongAnswersByUserID(userID int) ([]*model.SolvedProblem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SolvedProblem), args.Error(1)
}

func (m *mockSolvedRepoForStatsSvc) CreateSolvedProblem(*model.SolvedProblem) error { return nil }
func (m *mockSolvedRepoForStatsSvc) ExistsByUserAndProblem(int, int) (bool, error) {
	return false, nil
}
func (m *mockSolvedRepoForStatsSvc) ExistsBySessionAndProblem(int, int) (bool, error) {
	return false, nil
}
func (m *mockSolvedRepoForStatsSvc) GetBySessionID(int) ([]*model.SolvedProblem, error) {
	return nil, nil
}

type mockProblemRepoForStatsSvc struct{ mock.Mock }

func (m *mockProblemRepoForStatsSvc) CountAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProblemRepoForStatsSvc) CountProblems(category model.Category, difficulty model.Difficulty) (int64, error) {
	args := m.Called(category, difficulty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProblemRepoForStatsSvc) CreateProblem(*model.Problem) error { return nil }
func (m *mockProblemRepoForStatsSvc) GetProblemByID(int) (*model.Problem, error) {
	return nil, nil
}
func (m *mockProblemRepoForStatsSvc) GetProblems(model.Category, model.Difficulty) ([]*model.Problem, error) {
	return nil, nil
}
func (m *mockProblemRepoForStatsSvc) GetRandomProblems(model.Category, model.Difficulty, int) ([]*model.Problem, error) {
	return nil, nil
}
func (m *mockProblemRepoForStatsSvc) UpdateProblem(*model.Problem) error { return nil }
func (m *mockProblemRepoForStatsSvc) DeleteProblem(int) error            { return nil }

func solvedRecords() []*model.SolvedProblem {
	return []*model.SolvedProblem{
		{ProblemID: 1, IsCorrect: true, Score: 100, Category: model.CategoryJava, Difficulty: model.DifficultyEasy},
		{ProblemID: 2, IsCorrect: true, Score: 90, Category: model.CategoryJava, Difficulty: model.DifficultyEasy},
		{ProblemID: 3, IsCorrect: false, Score: 40, Category: model.CategoryJava, Difficulty: model.DifficultyHard},
		{ProblemID: 4, IsCorrect: false, Score: 30, Category: model.CategoryDatabase, Difficulty: model.DifficultyMedium},
	}
}

func TestStatisticsService_GetOverallStats(t *testing.T) {
	solvedRepo := new(mockSolvedRepoForStatsSvc)
	problemRepo := new(mockProblemRepoForStatsSvc)
	svc := NewStatisticsService(solvedRepo, problemRepo)

	problemRepo.On("CountAll").Return(int64(50), nil).Once()
	solvedRepo.On("GetByUserID", 7).Return(solvedRecords(), nil).Once()

	stats, err := svc.GetOverallStats(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), stats.TotalProblems)
	assert.Equal(t, int64(4), stats.SolvedProblems)
	assert.Equal(t, int64(2), stats.CorrectCount)
	assert.Equal(t, int64(2), stats.IncorrectCount)
	assert.Equal(t, 50.0, stats.Accuracy)
	assert.Equal(t, 65.0, stats.AverageScore)
}

func TestStatisticsService_GetOverallStats_NoRecords(t *testing.T) {
	solvedRepo := new(mockSolvedRepoForStatsSvc)
	problemRepo := new(mockProblemRepoForStatsSvc)
	svc := NewStatisticsService(solvedRepo, problemRepo)

	problemRepo.On("CountAll").Return(int64(50), nil).Once()
	solvedRepo.On("GetByUserID", 7).Return([]*model.SolvedProblem{}, nil).Once()

	stats, err := svc.GetOverallStats(7)
	assert.NoError(t, err)
	assert.Zero(t, stats.SolvedProblems)
	assert.Zero(t, stats.Accuracy, "accuracy with no attempts must not divide by zero")
}

func TestStatisticsService_GetWeakPoints(t *testing.T) {
	solvedRepo := new(mockSolvedRepoForStatsSvc)
	svc := NewStatisticsService(solvedRepo, new(mockProblemRepoForStatsSvc))

	solvedRepo.On("GetByUserID", 7).Return(solvedRecords(), nil).Once()

	weakPoints, err := svc.GetWeakPoints(7)
	assert.NoError(t, err)
	assert.Len(t, weakPoints, 3)

	// Lowest accuracy first; the untouched pairs do not appear at all.
	assert.Equal(t, 0.0, weakPoints[0].Accuracy)
	assert.Equal(t, 100.0, weakPoints[len(weakPoints)-1].Accuracy)
	assert.Equal(t, model.CategoryJava, weakPoints[len(weakPoints)-1].Category)
	assert.Equal(t, model.DifficultyEasy, weakPoints[len(weakPoints)-1].Difficulty)
}

func TestStatisticsService_GetCategoryStats(t *testing.T) {
	solvedRepo := new(mockSolvedRepoForStatsSvc)
	problemRepo := new(mockProblemRepoForStatsSvc)
	svc := NewStatisticsService(solvedRepo, problemRepo)

	solvedRepo.On("GetByUserID", 7).Return(solvedRecords(), nil).Once()
	problemRepo.On("CountProblems", mock.AnythingOfType("model.Category"), mock.AnythingOfType("model.Difficulty")).
		Return(int64(10), nil)

	stats, err := svc.GetCategoryStats(7)
	assert.NoError(t, err)
	assert.Len(t, stats, 5, "every category is reported, attempted or not")

	var java *CategoryStats
	for _, cs := range stats {
		if cs.Category == model.CategoryJava {
			java = cs
		}
	}
	assert.NotNil(t, java)
	assert.Equal(t, int64(3), java.SolvedProblems)
	assert.Equal(t, int64(2), java.CorrectCount)
	assert.Equal(t, 66.67, java.Accuracy)
	assert.Equal(t, int64(2), java.DifficultyStats[model.DifficultyEasy].SolvedCount)
	assert.Equal(t, 100.0, java.DifficultyStats[model.DifficultyEasy].Accuracy)
}
