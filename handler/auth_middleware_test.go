package handler

import (
	"context"
	"go-quiz-api/model"
	"go-quiz-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type gateFixture struct {
	authService   *service.AuthService
	blacklistRepo *fakeBlacklistRepo
	userRepo      *fakeUserRepo
	gate          http.Handler
	nextCalled    *bool
	seenLoginID   *string
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	blacklistRepo := newFakeBlacklistRepo()
	userRepo := newFakeUserRepo()
	authService := service.NewAuthService(userRepo, newFakeTokenRepo())

	nextCalled := false
	seenLoginID := ""
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if loginID, ok := r.Context().Value(LoginIDKey).(string); ok {
			seenLoginID = loginID
		}
		w.WriteHeader(http.StatusOK)
	})

	return &gateFixture{
		authService:   authService,
		blacklistRepo: blacklistRepo,
		userRepo:      userRepo,
		gate:          AuthMiddleware(authService, blacklistRepo, userRepo)(next),
		nextCalled:    &nextCalled,
		seenLoginID:   &seenLoginID,
	}
}

func (f *gateFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.gate.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_NoTokenPassesThroughAnonymous(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	rr := f.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *f.nextCalled)
	assert.Empty(t, *f.seenLoginID)
}

func TestAuthMiddleware_ValidTokenAttachesIdentity(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.CreateUser(&model.User{LoginID: "alice", Role: string(model.RoleUser)})

	token, err := f.authService.IssueToken(model.TokenTypeAccess, "alice", []string{string(model.RoleUser)}, time.Minute)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", *f.seenLoginID)
}

func TestAuthMiddleware_BlacklistedToken(t *testing.T) {
	f := newGateFixture(t)

	token, _ := f.authService.IssueToken(model.TokenTypeAccess, "alice", nil, time.Minute)
	f.blacklistRepo.Create(&model.BlacklistedToken{Token: token, ExpiresAt: time.Now().Add(time.Minute)})

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "blacklisted")
	assert.False(t, *f.nextCalled)
}

// A token that is both blacklisted and expired must be rejected as revoked,
// not as expired: revocation is checked first.
func TestAuthMiddleware_RevocationWinsOverExpiry(t *testing.T) {
	f := newGateFixture(t)

	token, _ := f.authService.IssueToken(model.TokenTypeAccess, "alice", nil, -time.Minute)
	f.blacklistRepo.Create(&model.BlacklistedToken{Token: token, ExpiresAt: time.Now()})

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "blacklisted")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	f := newGateFixture(t)

	token, _ := f.authService.IssueToken(model.TokenTypeAccess, "alice", nil, -time.Minute)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "expired")
	assert.False(t, *f.nextCalled)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *f.nextCalled)
}

// A refresh token is a genuine signed token but the gate only admits the
// access type.
func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	f := newGateFixture(t)

	token, _ := f.authService.IssueToken(model.TokenTypeRefresh, "alice", nil, time.Hour)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, *f.nextCalled)
}

func TestAuthMiddleware_BlacklistStoreError(t *testing.T) {
	f := newGateFixture(t)
	f.blacklistRepo.err = assert.AnError

	token, _ := f.authService.IssueToken(model.TokenTypeAccess, "alice", nil, time.Minute)

	req := httptest.NewRequest("GET", "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := f.serve(req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, *f.nextCalled)
}

func TestAdminMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	admin := AdminMiddleware(next)

	t.Run("admin role passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), UserRolesKey, []string{string(model.RoleAdmin)})
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), UserRolesKey, []string{string(model.RoleUser)})
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	_, ok = BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer abc123")
	token, ok := BearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}
