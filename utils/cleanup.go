package utils

import (
	"log"
	"time"

	"github.com/amravati-mc/e-library-backend/config"
	"github.com/amravati-mc/e-library-backend/services"
)

// CleanupExpiredSessions removes session rows past their expiry.
func CleanupExpiredSessions() {
	removed, err := services.CleanupExpiredSessions(config.DB)
	if err != nil {
		log.Printf("session cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("removed %d expired sessions", removed)
	}
}

// StartCleanupJob runs the session cleanup periodically.
func StartCleanupJob() {
	CleanupExpiredSessions()

	ticker := time.NewTicker(6 * time.Hour)

	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupExpiredSessions()
		}
	}()

	log.Println("session cleanup job started (every 6 hours)")
}
