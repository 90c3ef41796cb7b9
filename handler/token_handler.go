package handler

import (
	"encoding/json"
	"errors"
	"go-quiz-api/common"
	"go-quiz-api/service"
	"net/http"
)

type TokenHandler struct {
	authService *service.AuthService
}

func NewTokenHandler(authService *service.AuthService) *TokenHandler {
	return &TokenHandler{authService: authService}
}

// Reissue godoc
// @Summary      Exchange a refresh token for a new token pair
// @Description  Rotates the stored refresh session and mints a fresh access token.
// @Tags         token
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.AppError
// @Router       /api/users/reissue [post]
func (h *TokenHandler) Reissue(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusBadRequest, "Refresh token is missing", nil)
	}

	newAccess, newRefresh, err := h.authService.Reissue(cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenMalformed):
			return common.NewAppError(http.StatusBadRequest, "Invalid refresh token", err)
		case errors.Is(err, service.ErrTokenExpired):
			return common.NewAppError(http.StatusBadRequest, "Refresh token has expired", nil)
		case errors.Is(err, service.ErrWrongTokenType):
			return common.NewAppError(http.StatusBadRequest, "Invalid refresh token", nil)
		case errors.Is(err, service.ErrUnknownSession):
			return common.NewAppError(http.StatusBadRequest, "Refresh token not found", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not reissue tokens", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    newRefresh,
		Path:     "/",
		MaxAge:   int(h.authService.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Authorization", "Bearer "+newAccess)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"access_token": newAccess})
	return nil
}
