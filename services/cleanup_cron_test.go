package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nishkarsh01/ParkEasy-Application/database"
	"github.com/Nishkarsh01/ParkEasy-Application/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var testDBSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cleanuptest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))
	return db
}

func TestPurgeUnverified(t *testing.T) {
	db := testDB(t)

	staleUnverified := models.User{FullName: "Stale", Email: "stale@x.com", Verified: false}
	staleUnverified.CreatedAt = time.Now().Add(-48 * time.Hour)
	assert.NoError(t, db.Create(&staleUnverified).Error)

	freshUnverified := models.User{FullName: "Fresh", Email: "fresh@x.com", Verified: false}
	assert.NoError(t, db.Create(&freshUnverified).Error)

	hash := "$2a$10$notarealhashnotarealhashnotarealhashnotarealhashnota"
	staleVerified := models.User{FullName: "Kept", Email: "kept@x.com", Verified: true, Password: &hash, Role: models.RoleDriver}
	staleVerified.CreatedAt = time.Now().Add(-48 * time.Hour)
	assert.NoError(t, db.Create(&staleVerified).Error)

	googleID := "google-sub-9"
	staleGoogle := models.User{FullName: "OAuth", Email: "oauth@x.com", Verified: true, GoogleID: &googleID, Role: models.RoleDriver}
	staleGoogle.CreatedAt = time.Now().Add(-48 * time.Hour)
	assert.NoError(t, db.Create(&staleGoogle).Error)

	purgeUnverified(db)

	var emails []string
	assert.NoError(t, db.Model(&models.User{}).Order("email").Pluck("email", &emails).Error)
	assert.Equal(t, []string{"fresh@x.com", "kept@x.com", "oauth@x.com"}, emails)
}
