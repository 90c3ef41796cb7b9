package service

import (
	"go-quiz-api/logger"
	"go-quiz-api/repository"
	"time"
)

// TokenCleanupService periodically purges blacklist rows whose tokens have
// passed their natural expiry, along with refresh token rows for sessions
// that ran out. Correctness never depends on a sweep having run: an expired
// token is rejected by its own embedded expiry regardless of ledger
// membership. The sweep only reclaims space.
type TokenCleanupService struct {
	blacklistRepo repository.IBlacklistRepository
	tokenRepo     repository.ITokenRepository
	interval      time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewTokenCleanupService(blacklistRepo repository.IBlacklistRepository, tokenRepo repository.ITokenRepository, interval time.Duration) *TokenCleanupService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &TokenCleanupService{
		blacklistRepo: blacklistRepo,
		tokenRepo:     tokenRepo,
		interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start launches the background sweep loop. Call Stop to shut it down.
func (s *TokenCleanupService) Start() {
	go s.run()
	logger.Log.WithField("interval", s.interval.String()).Info("Token cleanup service started")
}

// Stop shuts the loop down and blocks until any in-progress sweep finishes.
func (s *TokenCleanupService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	logger.Log.Info("Token cleanup service stopped")
}

func (s *TokenCleanupService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes every ledger and refresh row whose expiry is strictly before
// now. A store failure is logged and swallowed; the next tick simply retries.
func (s *TokenCleanupService) Sweep(now time.Time) {
	deleted, err := s.blacklistRepo.DeleteExpired(now)
	if err != nil {
		logger.Log.WithError(err).Error("Blacklist sweep failed")
	} else {
		logger.Log.WithField("deleted", deleted).Info("Expired blacklisted tokens purged")
	}

	deleted, err = s.tokenRepo.DeleteExpired(now)
	if err != nil {
		logger.Log.WithError(err).Error("Refresh token sweep failed")
		return
	}
	logger.Log.WithField("deleted", deleted).Info("Expired refresh tokens purged")
}
