package models

import "gorm.io/gorm"

const (
	RoleDriver = "driver"
	RoleLister = "lister"
)

// User is the only persisted entity. Password is nil for accounts that only
// ever authenticated through Google; GoogleID is nil for password accounts.
// A record never ends up with both nil once registration completes.
type User struct {
	gorm.Model
	FullName               string
	Email                  string `gorm:"uniqueIndex"`
	Password               *string
	Phone                  *string
	Role                   string
	LicensePlate           *string
	VehicleType            *string
	Verified               bool    `gorm:"default:false"`
	GoogleID               *string `gorm:"uniqueIndex"`
	WantsPushNotifications bool    `gorm:"default:false"`
	WantsCalendarReminders bool    `gorm:"default:false"`
}

func ValidRole(role string) bool {
	return role == RoleDriver || role == RoleLister
}
