package handler

import (
	"database/sql"
	"go-quiz-api/model"
	"sync"
	"time"
)

// In-memory stores backing the middleware tests. They mirror the uniqueness
// and idempotency guarantees of the real Postgres tables.

type fakeBlacklistRepo struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	err    error
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{tokens: make(map[string]time.Time)}
}

func (f *fakeBlacklistRepo) Create(token *model.BlacklistedToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	// Duplicate insert is a no-op, like ON CONFLICT DO NOTHING.
	if _, ok := f.tokens[token.Token]; !ok {
		f.tokens[token.Token] = token.ExpiresAt
	}
	return nil
}

func (f *fakeBlacklistRepo) ExistsByToken(token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeBlacklistRepo) DeleteExpired(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var deleted int64
	for token, expiresAt := range f.tokens {
		if expiresAt.Before(now) {
			delete(f.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{rows: make(map[string]*model.RefreshToken)}
}

func (f *fakeTokenRepo) Create(token *model.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	f.rows[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) ExistsByToken(token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[token]
	return ok, nil
}

func (f *fakeTokenRepo) DeleteByToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, token)
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for token, row := range f.rows {
		if row.ExpiresAt.Before(now) {
			delete(f.rows, token)
			deleted++
		}
	}
	return deleted, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.LoginID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByLoginID(loginID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[loginID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(id int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetAllUsers() ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) DeleteUser(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for loginID, user := range f.users {
		if user.ID == id {
			delete(f.users, loginID)
			return nil
		}
	}
	return sql.ErrNoRows
}
