package handler

import (
	"encoding/json"
	"go-quiz-api/common"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"go-quiz-api/service"
	"net/http"
	"time"
)

// LogoutMiddleware is the logout stage, terminal for its matched path.
//
// It revokes the presented access token (blacklist insert, idempotent) and
// deletes the refresh session row. The two halves are independent: if the
// revoke lands but a later step fails, the access token stays revoked - which
// is the safe direction - and the caller can retry logout for the session row.
func LogoutMiddleware(authService *service.AuthService, tokenRepo repository.ITokenRepository, blacklistRepo repository.IBlacklistRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := BearerToken(r)
			if !ok {
				common.NewAppError(http.StatusBadRequest, "Missing or invalid Authorization header", service.ErrMissingCredential).Send(w)
				return
			}

			accessClaims, err := authService.VerifyToken(accessToken)
			if err != nil {
				common.NewAppError(http.StatusBadRequest, "Invalid access token", err).Send(w)
				return
			}
			if authService.IsExpired(accessClaims, time.Now()) {
				// An expired token needs no revocation; nothing to do for it.
				common.NewAppError(http.StatusBadRequest, "Access token has expired", nil).Send(w)
				return
			}

			blacklisted := &model.BlacklistedToken{
				Token:     accessToken,
				ExpiresAt: accessClaims.ExpiresAt.Time,
			}
			if err := blacklistRepo.Create(blacklisted); err != nil {
				common.NewAppError(http.StatusInternalServerError, "Could not revoke access token", err).Send(w)
				return
			}
			logger.Log.WithField("login_id", accessClaims.LoginID).Info("Access token blacklisted until its natural expiry")

			cookie, err := r.Cookie(RefreshCookieName)
			if err != nil || cookie.Value == "" {
				common.NewAppError(http.StatusBadRequest, "Refresh token is missing", service.ErrMissingCredential).Send(w)
				return
			}
			refreshToken := cookie.Value

			refreshClaims, err := authService.VerifyToken(refreshToken)
			if err != nil {
				common.NewAppError(http.StatusBadRequest, "Invalid refresh token", err).Send(w)
				return
			}
			if authService.IsExpired(refreshClaims, time.Now()) {
				common.NewAppError(http.StatusBadRequest, "Refresh token has expired", nil).Send(w)
				return
			}
			if refreshClaims.TokenType != model.TokenTypeRefresh {
				common.NewAppError(http.StatusBadRequest, "Invalid refresh token", nil).Send(w)
				return
			}

			exists, err := tokenRepo.ExistsByToken(refreshToken)
			if err != nil {
				common.NewAppError(http.StatusInternalServerError, "Could not check session", err).Send(w)
				return
			}
			if !exists {
				common.NewAppError(http.StatusBadRequest, "Refresh token not found", nil).Send(w)
				return
			}

			if err := tokenRepo.DeleteByToken(refreshToken); err != nil {
				common.NewAppError(http.StatusInternalServerError, "Could not delete session", err).Send(w)
				return
			}

			// Expire the cookie immediately.
			http.SetCookie(w, &http.Cookie{
				Name:     RefreshCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				Secure:   true,
				SameSite: http.SameSiteStrictMode,
			})

			logger.Log.WithField("login_id", refreshClaims.LoginID).Info("User logged out")

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"message": "logout success"})
		})
	}
}
