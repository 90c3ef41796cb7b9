package repository

import (
	"database/sql"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
// One row per live session, keyed by the opaque token value.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	ExistsByToken(token string) (bool, error)
	DeleteByToken(token string) error
	DeleteExpired(now time.Time) (int64, error)
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"login_id":   token.LoginID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (login_id, token, expires_at) VALUES ($1, $2, $3) RETURNING id`
	err := r.DB.QueryRow(query, token.LoginID, token.Token, token.ExpiresAt).Scan(&token.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// ExistsByToken reports whether a refresh token row with this exact value exists.
func (r *TokenRepository) ExistsByToken(token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token = $1)`
	err := r.DB.QueryRow(query, token).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute refresh token exists query")
		return false, err
	}
	return exists, nil
}

// DeleteByToken removes the session row for this exact token value.
// Deleting a token that is already gone is not an error.
func (r *TokenRepository) DeleteByToken(token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.DB.Exec(query, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}

// DeleteExpired purges sessions whose refresh token has passed its expiry.
func (r *TokenRepository) DeleteExpired(now time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < $1`
	res, err := r.DB.Exec(query, now)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete expired refresh tokens query")
		return 0, err
	}
	return res.RowsAffected()
}
