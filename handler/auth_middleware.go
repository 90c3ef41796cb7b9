package handler

import (
	"context"
	"database/sql"
	"errors"
	"go-quiz-api/common"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"go-quiz-api/service"
	"net/http"
	"strings"
	"time"
)

// BearerToken extracts the token from an "Authorization: Bearer x" header.
// The second return is false when no usable bearer credential is present.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
		return "", false
	}
	return headerParts[1], true
}

// AuthMiddleware validates the bearer access token on protected requests and
// attaches the caller's identity to the request context.
//
// A request without a bearer token passes through unauthenticated; handlers
// that require identity reject it themselves. Failure order matters and is
// caller-visible: revocation is checked before the signature, expiry before
// the token type. A blacklisted token is 401 while a merely expired one is
// 403 - that asymmetry is part of the API contract.
func AuthMiddleware(authService *service.AuthService, blacklistRepo repository.IBlacklistRepository, userRepo repository.IUserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			revoked, err := blacklistRepo.ExistsByToken(tokenString)
			if err != nil {
				common.NewAppError(http.StatusInternalServerError, "Error checking token revocation", err).Send(w)
				return
			}
			if revoked {
				logger.Log.WithField("path", r.URL.Path).Warn("Rejected blacklisted access token")
				common.NewAppError(http.StatusUnauthorized, "Access token is blacklisted", service.ErrTokenRevoked).Send(w)
				return
			}

			claims, err := authService.VerifyToken(tokenString)
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Invalid token", err).Send(w)
				return
			}

			if authService.IsExpired(claims, time.Now()) {
				common.NewAppError(http.StatusForbidden, "Access token expired", nil).Send(w)
				return
			}

			if claims.TokenType != model.TokenTypeAccess {
				common.NewAppError(http.StatusBadRequest, "Invalid access token", nil).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), LoginIDKey, claims.LoginID)
			ctx = context.WithValue(ctx, UserRolesKey, claims.Roles)

			user, err := userRepo.GetUserByLoginID(claims.LoginID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					common.NewAppError(http.StatusInternalServerError, "Error resolving account", err).Send(w)
					return
				}
			} else {
				ctx = context.WithValue(ctx, UserIDKey, user.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware allows the request through only when the gate attached an
// admin role.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roles, ok := r.Context().Value(UserRolesKey).([]string)
		if !ok || !hasRole(roles, string(model.RoleAdmin)) {
			common.NewAppError(http.StatusForbidden, "Access denied. Admin privileges required.", nil).Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}
	return false
}
