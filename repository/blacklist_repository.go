package repository

import (
	"database/sql"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// IBlacklistRepository defines the contract for the revocation ledger: access
// tokens explicitly invalidated at logout, before their natural expiry.
type IBlacklistRepository interface {
	Create(token *model.BlacklistedToken) error
	ExistsByToken(token string) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
}

// BlacklistRepository implements IBlacklistRepository.
type BlacklistRepository struct {
	DB *sql.DB
}

// NewBlacklistRepository creates a new BlacklistRepository.
func NewBlacklistRepository(db *sql.DB) *BlacklistRepository {
	return &BlacklistRepository{DB: db}
}

// Create inserts a revocation record. Two concurrent logouts with the same
// access token may both reach this insert; the duplicate is treated as
// success, never as an error.
func (r *BlacklistRepository) Create(token *model.BlacklistedToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to blacklist an access token")

	query := `INSERT INTO blacklisted_tokens (token, expires_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`
	_, err := r.DB.Exec(query, token.Token, token.ExpiresAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute blacklist token query")
		return err
	}
	return nil
}

// ExistsByToken reports whether this exact token value has been revoked.
func (r *BlacklistRepository) ExistsByToken(token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token = $1)`
	err := r.DB.QueryRow(query, token).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute blacklist exists query")
		return false, err
	}
	return exists, nil
}

// DeleteExpired removes ledger rows whose expiry has passed. A revoked token
// past its own expiry is already rejected by the expiry check, so these rows
// are pure bookkeeping cost.
func (r *BlacklistRepository) DeleteExpired(now time.Time) (int64, error) {
	query := `DELETE FROM blacklisted_tokens WHERE expires_at < $1`
	res, err := r.DB.Exec(query, now)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete expired blacklisted tokens query")
		return 0, err
	}
	return res.RowsAffected()
}
