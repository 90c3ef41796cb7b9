package repository

import (
	"database/sql"
	"go-quiz-api/model"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newBlacklistRepoWithMock(t *testing.T) (*BlacklistRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewBlacklistRepository(db), mock, db
}

func TestBlacklistRepository_Create(t *testing.T) {
	repo, mock, db := newBlacklistRepoWithMock(t)
	defer db.Close()

	expiresAt := time.Now().Add(15 * time.Minute)

	t.Run("first insert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO blacklisted_tokens \(token, expires_at\) VALUES \(\$1, \$2\) ON CONFLICT \(token\) DO NOTHING`).
			WithArgs("access-token", expiresAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		err := repo.Create(&model.BlacklistedToken{Token: "access-token", ExpiresAt: expiresAt})
		assert.NoError(t, err)
	})

	t.Run("duplicate insert is swallowed by the conflict clause", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO blacklisted_tokens \(token, expires_at\) VALUES \(\$1, \$2\) ON CONFLICT \(token\) DO NOTHING`).
			WithArgs("access-token", expiresAt).
			WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Create(&model.BlacklistedToken{Token: "access-token", ExpiresAt: expiresAt})
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistRepository_ExistsByToken(t *testing.T) {
	repo, mock, db := newBlacklistRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM blacklisted_tokens WHERE token = \$1\)`).
		WithArgs("revoked-token").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByToken("revoked-token")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistRepository_DeleteExpired(t *testing.T) {
	repo, mock, db := newBlacklistRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`DELETE FROM blacklisted_tokens WHERE expires_at < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteExpired(now)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
