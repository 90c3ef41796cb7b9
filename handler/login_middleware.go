package handler

import (
	"encoding/json"
	"errors"
	"go-quiz-api/common"
	"go-quiz-api/model"
	"go-quiz-api/service"
	"net/http"
)

const RefreshCookieName = "refreshToken"

// LoginMiddleware is the sign-in stage. It is terminal for its matched path:
// it consumes no prior authentication state (it is what establishes
// authentication) and never forwards the request downstream.
//
// On success the access token travels in the Authorization response header
// and the refresh token in an HttpOnly cookie the browser scripts cannot read.
func LoginMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req model.SignInRequest
			if !common.ValidateAndDecode(w, r, &req) {
				return
			}

			accessToken, refreshToken, err := authService.Login(req.LoginID, req.Password)
			if err != nil {
				if errors.Is(err, service.ErrInvalidCredential) {
					// One message for unknown account and wrong password.
					common.NewAppError(http.StatusUnauthorized, "Invalid login id or password", nil).Send(w)
					return
				}
				common.NewAppError(http.StatusInternalServerError, "Login failed", err).Send(w)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     RefreshCookieName,
				Value:    refreshToken,
				Path:     "/",
				MaxAge:   int(authService.RefreshTTL().Seconds()),
				HttpOnly: true,
				Secure:   true,
				SameSite: http.SameSiteStrictMode,
			})

			w.Header().Set("Authorization", "Bearer "+accessToken)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"message":      "login success",
				"access_token": accessToken,
			})
		})
	}
}
