package services

import (
	"log"
	"time"

	"github.com/Nishkarsh01/ParkEasy-Application/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartUnverifiedCleanupCron removes placeholder accounts whose email was
// never verified within 24 hours of initiate-registration. Runs nightly at
// 03:00 server time.
func StartUnverifiedCleanupCron(db *gorm.DB) {
	c := cron.New()
	c.AddFunc("0 3 * * *", func() {
		purgeUnverified(db)
	})
	c.Start()
	log.Println("Unverified-account cleanup cron started")
}

func purgeUnverified(db *gorm.DB) {
	cutoff := time.Now().Add(-24 * time.Hour)
	res := db.Unscoped().
		Where("verified = ? AND password IS NULL AND google_id IS NULL AND created_at < ?", false, cutoff).
		Delete(&models.User{})
	if res.Error != nil {
		log.Printf("unverified cleanup failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("unverified cleanup removed %d stale accounts", res.RowsAffected)
	}
}
