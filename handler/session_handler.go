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

type SessionHandler struct {
	sessionService *service.SessionService
	solvingService *service.SolvingService
}

func NewSessionHandler(sessionService *service.SessionService, solvingService *service.SolvingService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, solvingService: solvingService}
}

// CreateSession godoc
// @Summary      Start a challenge session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.CreateSessionRequest  true  "session parameters"
// @Success      201  {object}  model.Session
// @Router       /api/sessions [post]
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateSessionRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, _ := r.Context().Value(UserIDKey).(int)

	session, err := h.sessionService.CreateSession(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientProblems) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create session", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
	return nil
}

// GetSession godoc
// @Summary      Session by id
// @Tags         sessions
// @Produce      json
// @Param        id  path  int  true  "session id"
// @Success      200  {object}  model.Session
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := sessionID(r)
	if appErr != nil {
		return appErr
	}

	session, err := h.sessionService.GetSession(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Session not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load session", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
	return nil
}

// GetSessionProblems godoc
// @Summary      Problems drawn for a session
// @Tags         sessions
// @Produce      json
// @Param        id  path  int  true  "session id"
// @Success      200  {array}  model.Problem
// @Router       /api/sessions/{id}/problems [get]
func (h *SessionHandler) GetSessionProblems(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := sessionID(r)
	if appErr != nil {
		return appErr
	}

	problems, err := h.sessionService.GetSessionProblems(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Session not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load session problems", err)
	}

	views := make([]problemView, 0, len(problems))
	for _, p := range problems {
		views = append(views, toProblemView(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
	return nil
}

// SubmitSessionAnswer godoc
// @Summary      Submit and grade an answer inside a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                        true  "session id"
// @Param        request  body  model.SubmitAnswerRequest  true  "answer"
// @Success      201  {object}  model.SolvedProblem
// @Failure      409  {object}  common.AppError
// @Router       /api/sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSessionAnswer(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := sessionID(r)
	if appErr != nil {
		return appErr
	}

	var req model.SubmitAnswerRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	solved, err := h.solvingService.SubmitAnswerInSession(id, req.ProblemID, req.UserAnswer)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.NewAppError(http.StatusNotFound, "Session or problem not found", nil)
		case errors.Is(err, service.ErrProblemAlreadySolved):
			return common.NewAppError(http.StatusConflict, "Problem already solved in this session", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not grade answer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(solved)
	return nil
}

// CompleteSession godoc
// @Summary      Mark a session completed
// @Tags         sessions
// @Security     BearerAuth
// @Param        id  path  int  true  "session id"
// @Success      200  {object}  model.Session
// @Failure      409  {object}  common.AppError
// @Router       /api/sessions/{id}/complete [post]
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := sessionID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.sessionService.CompleteSession(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.NewAppError(http.StatusNotFound, "Session not found", nil)
		case errors.Is(err, service.ErrSessionAlreadyCompleted):
			return common.NewAppError(http.StatusConflict, "Session already completed", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not complete session", err)
		}
	}

	session, err := h.sessionService.GetSession(id)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load session", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
	return nil
}

// GetSessionResults godoc
// @Summary      Graded answers of a session
// @Tags         sessions
// @Produce      json
// @Param        id  path  int  true  "session id"
// @Success      200  {array}  model.SolvedProblem
// @Router       /api/sessions/{id}/results [get]
func (h *SessionHandler) GetSessionResults(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := sessionID(r)
	if appErr != nil {
		return appErr
	}

	solved, err := h.sessionService.GetSessionSolvedProblems(id)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load session results", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(solved)
	return nil
}

// ListMySessions godoc
// @Summary      Sessions of the current user
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Session
// @Router       /api/users/me/sessions [get]
func (h *SessionHandler) ListMySessions(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	sessions, err := h.sessionService.GetUserSessions(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list sessions", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
	return nil
}

func sessionID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid session id", nil)
	}
	return id, nil
}
