package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-quiz-api/config"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signs and verifies bearer tokens and owns the login/reissue
// flows. Token verification checks shape and signature only; expiry and
// revocation are checked by the caller, because the gate and the logout stage
// apply different policies to them.
type AuthService struct {
	userRepo   repository.IUserRepository
	tokenRepo  repository.ITokenRepository
	jwtKey     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *AuthService {
	cfg := config.AppConfig.JWT

	accessTTL := time.Duration(cfg.AccessTTLMinutes) * time.Minute
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := time.Duration(cfg.RefreshTTLHours) * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 14 * 24 * time.Hour
	}

	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtKey:     []byte(cfg.SecretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *AuthService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IssueToken signs a claim set of the given type with the shared symmetric key.
func (s *AuthService) IssueToken(tokenType, loginID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		TokenType: tokenType,
		LoginID:   loginID,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		logger.Log.WithError(err).WithField("login_id", loginID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// VerifyToken decodes the token and checks its signature. It deliberately
// does NOT validate expiry: an expired-but-genuine token still verifies, and
// callers decide what expiry means for them.
func (s *AuthService) VerifyToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// IsExpired reports whether the claim set's embedded expiry has passed.
func (s *AuthService) IsExpired(claims *model.AppClaims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(now)
}

// Login verifies credentials, mints one access and one refresh token, and
// registers the refresh token as a live session. Unknown login id and wrong
// password collapse into the same error so callers cannot probe accounts.
func (s *AuthService) Login(loginID, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.GetUserByLoginID(loginID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredential
		}
		return "", "", err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredential
	}

	roles := []string{user.Role}

	accessToken, err = s.IssueToken(model.TokenTypeAccess, user.LoginID, roles, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.IssueToken(model.TokenTypeRefresh, user.LoginID, roles, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	row := &model.RefreshToken{
		LoginID:   user.LoginID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(row); err != nil {
		return "", "", err
	}

	logger.Log.WithField("login_id", user.LoginID).Info("User logged in, token pair issued")
	return accessToken, refreshToken, nil
}

// Reissue exchanges a live refresh token for a new token pair, rotating the
// stored session row. A syntactically valid refresh token whose value is not
// in the store is an unknown session and must be rejected.
func (s *AuthService) Reissue(refreshToken string) (newAccess, newRefresh string, err error) {
	claims, err := s.VerifyToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if s.IsExpired(claims, time.Now()) {
		return "", "", ErrTokenExpired
	}
	if claims.TokenType != model.TokenTypeRefresh {
		return "", "", ErrWrongTokenType
	}

	exists, err := s.tokenRepo.ExistsByToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", ErrUnknownSession
	}

	newAccess, err = s.IssueToken(model.TokenTypeAccess, claims.LoginID, claims.Roles, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	newRefresh, err = s.IssueToken(model.TokenTypeRefresh, claims.LoginID, claims.Roles, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	// Rotate: the old session row is replaced, never updated in place.
	if err := s.tokenRepo.DeleteByToken(refreshToken); err != nil {
		return "", "", err
	}
	row := &model.RefreshToken{
		LoginID:   claims.LoginID,
		Token:     newRefresh,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(row); err != nil {
		return "", "", err
	}

	logger.Log.WithField("login_id", claims.LoginID).Info("Refresh token rotated")
	return newAccess, newRefresh, nil
}
