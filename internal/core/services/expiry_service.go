package services

import (
	"context"
	"log"
	"time"

	"loco-verify/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ExpiryService persists the APPROVED → EXPIRED derivation once a day.
// Read paths derive expiry on the fly; the sweep only keeps stored
// statuses from drifting indefinitely.
type ExpiryService struct {
	licenseRepo repositories.LicenseRepository
	cron        *cron.Cron
}

// NewExpiryService creates a new expiry sweep service
func NewExpiryService(licenseRepo repositories.LicenseRepository) *ExpiryService {
	return &ExpiryService{
		licenseRepo: licenseRepo,
		cron:        cron.New(),
	}
}

// Start schedules the daily sweep (00:30)
func (s *ExpiryService) Start() {
	s.cron.AddFunc("30 0 * * *", s.Sweep)
	s.cron.Start()
	log.Println("🚀 ExpiryService started (daily sweep at 00:30)")
}

// Stop stops the scheduler
func (s *ExpiryService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ExpiryService stopped")
}

// Sweep marks approved licenses past their expiry date as EXPIRED
func (s *ExpiryService) Sweep() {
	count, err := s.licenseRepo.MarkExpired(context.Background(), time.Now())
	if err != nil {
		log.Printf("❌ Expiry sweep error: %v", err)
		return
	}

	if count > 0 {
		log.Printf("⏰ Expiry sweep: %d licenses marked EXPIRED", count)
	}
}
