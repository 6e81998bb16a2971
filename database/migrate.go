package database

import (
	"github.com/Nishkarsh01/ParkEasy-Application/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}
