package utils

import "gorm.io/gorm"

// Process-wide database handle, assigned once in main (tests swap in an
// in-memory store). Controllers reach it through GetDB instead of
// threading *gorm.DB through every handler.
var db *gorm.DB

func SetDB(database *gorm.DB) {
	db = database
}

func GetDB() *gorm.DB {
	return db
}
