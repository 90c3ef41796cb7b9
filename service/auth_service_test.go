package service

import (
	"database/sql"
	"go-quiz-api/config"
	"go-quiz-api/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	config.AppConfig.JWT.SecretKey = "test-secret-key-for-unit-tests"
	config.AppConfig.JWT.AccessTTLMinutes = 15
	config.AppConfig.JWT.RefreshTTLHours = 336
}

// mockUserRepoForAuthSvc is a mock implementation of IUserRepository for testing the auth service.
type mockUserRepoForAuthSvc struct{ mock.Mock }

func (m *mockUserRepoForAuthSvc) GetUserByLoginID(loginID string) (*model.User, error) {
	args := m.Called(loginID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// --- Unused methods that are required to satisfy the interface contract ---
func (m *mockUserRepoForAuthSvc) CreateUser(*model.User) error         { return nil }
func (m *mockUserRepoForAuthSvc) GetUserByID(int) (*model.User, error) { return nil, nil }
func (m *mockUserRepoForAuthSvc) GetAllUsers() ([]*model.User, error)  { return nil, nil }
func (m *mockUserRepoForAuthSvc) DeleteUser(int) error                 { return nil }

type mockTokenRepoForAuthSvc struct{ mock.Mock }

func (m *mockTokenRepoForAuthSvc) Create(token *model.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *mockTokenRepoForAuthSvc) ExistsByToken(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenRepoForAuthSvc) DeleteByToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *mockTokenRepoForAuthSvc) DeleteExpired(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}
}

func TestAuthService_IssueAndVerifyToken(t *testing.T) {
	authService := NewAuthService(nil, nil)

	tokenString, err := authService.IssueToken(model.TokenTypeAccess, "alice", []string{string(model.RoleUser)}, time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := authService.VerifyToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, model.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "alice", claims.LoginID)
	assert.Equal(t, []string{string(model.RoleUser)}, claims.Roles)
	assert.False(t, authService.IsExpired(claims, time.Now()))
}

func TestAuthService_VerifyToken_RejectsTampering(t *testing.T) {
	authService := NewAuthService(nil, nil)

	t.Run("garbage input", func(t *testing.T) {
		_, err := authService.VerifyToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("signed with a different key", func(t *testing.T) {
		tokenString, err := authService.IssueToken(model.TokenTypeAccess, "alice", nil, time.Minute)
		assert.NoError(t, err)

		config.AppConfig.JWT.SecretKey = "a-completely-different-key"
		other := NewAuthService(nil, nil)
		config.AppConfig.JWT.SecretKey = "test-secret-key-for-unit-tests"

		_, err = other.VerifyToken(tokenString)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})
}

// An expired token still verifies: its signature is genuine and the claims
// are readable. Only IsExpired reports the expiry.
func TestAuthService_VerifyToken_ExpiredTokenStillDecodes(t *testing.T) {
	authService := NewAuthService(nil, nil)

	tokenString, err := authService.IssueToken(model.TokenTypeAccess, "alice", nil, -time.Minute)
	assert.NoError(t, err)

	claims, err := authService.VerifyToken(tokenString)
	assert.NoError(t, err, "an expired token must still decode and verify")
	assert.Equal(t, "alice", claims.LoginID)
	assert.True(t, authService.IsExpired(claims, time.Now()))
}

func TestAuthService_Login(t *testing.T) {
	mockUserRepo := new(mockUserRepoForAuthSvc)
	mockTokenRepo := new(mockTokenRepoForAuthSvc)
	authService := NewAuthService(mockUserRepo, mockTokenRepo)

	hashed, _ := authService.HashPassword("password123")
	user := &model.User{ID: 1, LoginID: "alice", Password: hashed, Role: string(model.RoleUser)}

	t.Run("successful login stores the refresh token", func(t *testing.T) {
		mockUserRepo.On("GetUserByLoginID", "alice").Return(user, nil).Once()
		mockTokenRepo.On("Create", mock.MatchedBy(func(row *model.RefreshToken) bool {
			return row.LoginID == "alice" && row.Token != "" && row.ExpiresAt.After(time.Now())
		})).Return(nil).Once()

		accessToken, refreshToken, err := authService.Login("alice", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)

		accessClaims, err := authService.VerifyToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, model.TokenTypeAccess, accessClaims.TokenType)

		refreshClaims, err := authService.VerifyToken(refreshToken)
		assert.NoError(t, err)
		assert.Equal(t, model.TokenTypeRefresh, refreshClaims.TokenType)

		mockUserRepo.AssertExpectations(t)
		mockTokenRepo.AssertExpectations(t)
	})

	t.Run("unknown user and wrong password return the same error", func(t *testing.T) {
		mockUserRepo.On("GetUserByLoginID", "nobody").Return(nil, sql.ErrNoRows).Once()
		_, _, errUnknown := authService.Login("nobody", "password123")
		assert.ErrorIs(t, errUnknown, ErrInvalidCredential)

		mockUserRepo.On("GetUserByLoginID", "alice").Return(user, nil).Once()
		_, _, errWrongPw := authService.Login("alice", "wrongpassword")
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredential)

		assert.Equal(t, errUnknown, errWrongPw)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestAuthService_Reissue(t *testing.T) {
	t.Run("rotates the stored session row", func(t *testing.T) {
		mockTokenRepo := new(mockTokenRepoForAuthSvc)
		authService := NewAuthService(nil, mockTokenRepo)

		refreshToken, err := authService.IssueToken(model.TokenTypeRefresh, "alice", []string{string(model.RoleUser)}, time.Hour)
		assert.NoError(t, err)

		mockTokenRepo.On("ExistsByToken", refreshToken).Return(true, nil).Once()
		mockTokenRepo.On("DeleteByToken", refreshToken).Return(nil).Once()
		mockTokenRepo.On("Create", mock.MatchedBy(func(row *model.RefreshToken) bool {
			return row.LoginID == "alice" && row.Token != refreshToken
		})).Return(nil).Once()

		// Token timestamps have one second precision; without this the
		// rotated token could be byte-identical to the old one.
		time.Sleep(1 * time.Second)

		newAccess, newRefresh, err := authService.Reissue(refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.NotEqual(t, refreshToken, newRefresh)
		mockTokenRepo.AssertExpectations(t)
	})

	t.Run("valid token with no stored session is rejected", func(t *testing.T) {
		mockTokenRepo := new(mockTokenRepoForAuthSvc)
		authService := NewAuthService(nil, mockTokenRepo)

		refreshToken, err := authService.IssueToken(model.TokenTypeRefresh, "alice", nil, time.Hour)
		assert.NoError(t, err)

		mockTokenRepo.On("ExistsByToken", refreshToken).Return(false, nil).Once()

		_, _, err = authService.Reissue(refreshToken)
		assert.ErrorIs(t, err, ErrUnknownSession)
		mockTokenRepo.AssertExpectations(t)
	})

	t.Run("expired refresh token is rejected before the store lookup", func(t *testing.T) {
		mockTokenRepo := new(mockTokenRepoForAuthSvc)
		authService := NewAuthService(nil, mockTokenRepo)

		refreshToken, err := authService.IssueToken(model.TokenTypeRefresh, "alice", nil, -time.Minute)
		assert.NoError(t, err)

		_, _, err = authService.Reissue(refreshToken)
		assert.ErrorIs(t, err, ErrTokenExpired)
		mockTokenRepo.AssertNotCalled(t, "ExistsByToken", mock.Anything)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		mockTokenRepo := new(mockTokenRepoForAuthSvc)
		authService := NewAuthService(nil, mockTokenRepo)

		accessToken, err := authService.IssueToken(model.TokenTypeAccess, "alice", nil, time.Hour)
		assert.NoError(t, err)

		_, _, err = authService.Reissue(accessToken)
		assert.ErrorIs(t, err, ErrWrongTokenType)
		mockTokenRepo.AssertNotCalled(t, "ExistsByToken", mock.Anything)
	})
}
