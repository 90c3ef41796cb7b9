package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"go-quiz-api/common"
	"go-quiz-api/model"
	"go-quiz-api/service"
	"net/http"
	"strconv"
)

type ProblemHandler struct {
	problemService *service.ProblemService
	solvingService *service.SolvingService
}

func NewProblemHandler(problemService *service.ProblemService, solvingService *service.SolvingService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService, solvingService: solvingService}
}

// problemView hides the stored answer but exposes decoded choices.
type problemView struct {
	*model.Problem
	Choices []string `json:"choices,omitempty"`
}

func toProblemView(p *model.Problem) problemView {
	return problemView{Problem: p, Choices: p.Choices()}
}

// ListProblems godoc
// @Summary      List problems
// @Tags         problems
// @Produce      json
// @Param        category    query  string  false  "category filter"
// @Param        difficulty  query  string  false  "difficulty filter"
// @Success      200  {array}  model.Problem
// @Router       /api/problems [get]
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) *common.AppError {
	category := model.Category(r.URL.Query().Get("category"))
	difficulty := model.Difficulty(r.URL.Query().Get("difficulty"))

	problems, err := h.problemService.GetProblems(category, difficulty)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list problems", err)
	}

	views := make([]problemView, 0, len(problems))
	for _, p := range problems {
		views = append(views, toProblemView(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
	return nil
}

// GetProblem godoc
// @Summary      Problem by id
// @Tags         problems
// @Produce      json
// @Param        id  path  int  true  "problem id"
// @Success      200  {object}  model.Problem
// @Router       /api/problems/{id} [get]
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid problem id", nil)
	}

	problem, err := h.problemService.GetProblemByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Problem not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load problem", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProblemView(problem))
	return nil
}

// SubmitAnswer godoc
// @Summary      Submit and grade an answer (free practice)
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.SubmitAnswerRequest  true  "answer"
// @Success      201  {object}  model.SolvedProblem
// @Failure      409  {object}  common.AppError
// @Router       /api/problems/solve [post]
func (h *ProblemHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubmitAnswerRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	// Anonymous solving is allowed; the record is simply not tied to a user.
	userID, _ := r.Context().Value(UserIDKey).(int)

	solved, err := h.solvingService.SubmitAnswer(userID, req.ProblemID, req.UserAnswer)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.NewAppError(http.StatusNotFound, "Problem not found", nil)
		case errors.Is(err, service.ErrProblemAlreadySolved):
			return common.NewAppError(http.StatusConflict, "Problem already solved", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not grade answer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(solved)
	return nil
}

// CreateProblem godoc
// @Summary      Create a problem (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.CreateProblemRequest  true  "problem"
// @Success      201  {object}  model.Problem
// @Router       /api/admin/problems [post]
func (h *ProblemHandler) CreateProblem(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateProblemRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	problem, err := h.problemService.CreateProblem(&req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create problem", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProblemView(problem))
	return nil
}

// UpdateProblem godoc
// @Summary      Update a problem (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                        true  "problem id"
// @Param        request  body  model.UpdateProblemRequest true  "fields to update"
// @Success      200  {object}  model.Problem
// @Router       /api/admin/problems/{id} [put]
func (h *ProblemHandler) UpdateProblem(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid problem id", nil)
	}

	var req model.UpdateProblemRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	problem, err := h.problemService.UpdateProblem(id, &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Problem not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update problem", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProblemView(problem))
	return nil
}

// DeleteProblem godoc
// @Summary      Delete a problem (admin)
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "problem id"
// @Success      204
// @Router       /api/admin/problems/{id} [delete]
func (h *ProblemHandler) DeleteProblem(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid problem id", nil)
	}

	if err := h.problemService.DeleteProblem(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Problem not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete problem", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
