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

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// SignUp godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.SignUpRequest  true  "sign up request"
// @Success      201  {object}  model.User
// @Failure      409  {object}  common.AppError
// @Router       /api/users/sign-up [post]
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignUpRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.service.SignUp(&req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateLoginID) {
			return common.NewAppError(http.StatusConflict, "Login id already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// GetMyProfile godoc
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Router       /api/users/me [get]
func (h *UserHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load profile", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
	return nil
}

// GetUser godoc
// @Summary      User info by id
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "user id"
// @Success      200  {object}  model.User
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user id", nil)
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
	return nil
}

// ListUsers godoc
// @Summary      List all users (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.User
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list users", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
	return nil
}

// DeleteUser godoc
// @Summary      Delete a user (admin)
// @Tags         admin
// @Param        id  path  int  true  "user id"
// @Security     BearerAuth
// @Success      204
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user id", nil)
	}

	if err := h.service.DeleteUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete user", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
