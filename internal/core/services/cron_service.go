package services

import (
	"context"
	"log"

	"muni-votaciones/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// Purge expired and revoked refresh tokens nightly at 03:00.
	_, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("⚠️ Token purge failed: %v", err)
		return
	}
	log.Printf("🔄 Token purge: %d expired refresh tokens removed", deleted)
}
