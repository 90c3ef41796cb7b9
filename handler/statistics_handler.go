package handler

import (
	"encoding/json"
	"go-quiz-api/common"
	"go-quiz-api/service"
	"net/http"
)

type StatisticsHandler struct {
	statisticsService *service.StatisticsService
}

func NewStatisticsHandler(statisticsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// GetOverallStats godoc
// @Summary      Overall solving statistics for the current user
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.OverallStats
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetOverallStats(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	stats, err := h.statisticsService.GetOverallStats(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute statistics", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
	return nil
}

// GetCategoryStats godoc
// @Summary      Per-category accuracy breakdown
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  service.CategoryStats
// @Router       /api/statistics/categories [get]
func (h *StatisticsHandler) GetCategoryStats(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	stats, err := h.statisticsService.GetCategoryStats(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute category statistics", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
	return nil
}

// GetWeakPoints godoc
// @Summary      Categories with the lowest accuracy first
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  service.ProgressStats
// @Router       /api/statistics/weak-points [get]
func (h *StatisticsHandler) GetWeakPoints(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	stats, err := h.statisticsService.GetWeakPoints(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute weak points", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
	return nil
}

// GetWrongAnswers godoc
// @Summary      Problems the current user answered incorrectly
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.SolvedProblem
// @Router       /api/statistics/wrong-answers [get]
func (h *StatisticsHandler) GetWrongAnswers(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	solved, err := h.statisticsService.GetWrongAnswers(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load wrong answers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(solved)
	return nil
}
