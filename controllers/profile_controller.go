package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Nishkarsh01/ParkEasy-Application/config"
	"github.com/Nishkarsh01/ParkEasy-Application/models"
	"github.com/Nishkarsh01/ParkEasy-Application/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type ProfileController struct {
	Cfg *config.Config
	RDB *redis.Client
}

func NewProfileController(cfg *config.Config, rdb *redis.Client) *ProfileController {
	return &ProfileController{Cfg: cfg, RDB: rdb}
}

// UserPayload is the wire shape of a user record; the password hash never
// leaves the service.
func UserPayload(user *models.User) gin.H {
	return gin.H{
		"id":                       user.ID,
		"full_name":                user.FullName,
		"email":                    user.Email,
		"phone":                    user.Phone,
		"role":                     user.Role,
		"license_plate":            user.LicensePlate,
		"vehicle_type":             user.VehicleType,
		"verified":                 user.Verified,
		"wants_push_notifications": user.WantsPushNotifications,
		"wants_calendar_reminders": user.WantsCalendarReminders,
	}
}

// GET /api/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": UserPayload(&user)})
}

type UpdateProfileRequest struct {
	FullName               *string `json:"full_name"`
	Email                  *string `json:"email"`
	Phone                  *string `json:"phone"`
	Role                   *string `json:"role"`
	LicensePlate           *string `json:"license_plate"`
	VehicleType            *string `json:"vehicle_type"`
	WantsPushNotifications *bool   `json:"wants_push_notifications"`
	WantsCalendarReminders *bool   `json:"wants_calendar_reminders"`
}

// PUT /api/profile
//
// Partial update: only fields present in the body change.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		if !utils.ValidEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
			return
		}
		var count int64
		db.Model(&models.User{}).Where("email = ?", *req.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is already in use"})
			return
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be driver or lister"})
			return
		}
		user.Role = *req.Role
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.LicensePlate != nil {
		user.LicensePlate = req.LicensePlate
	}
	if req.VehicleType != nil {
		user.VehicleType = req.VehicleType
	}
	if req.WantsPushNotifications != nil {
		user.WantsPushNotifications = *req.WantsPushNotifications
	}
	if req.WantsCalendarReminders != nil {
		user.WantsCalendarReminders = *req.WantsCalendarReminders
	}

	if err := db.Save(&user).Error; err != nil {
		utils.LogError(err, "UpdateProfile: save user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": UserPayload(&user)})
}

// DELETE /api/profile
//
// Hard delete so the email becomes reusable for a fresh registration.
func (pc *ProfileController) DeleteUser(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}
	if err := db.Unscoped().Delete(&user).Error; err != nil {
		utils.LogError(err, "DeleteUser: delete user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// POST /api/logout
//
// Sessions are stateless, so logout blacklists the presented token in Redis
// for its remaining lifetime.
func (pc *ProfileController) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no token provided"})
		return
	}
	token = strings.TrimPrefix(token, "Bearer ")
	claims, err := utils.ParseJWT(token, pc.Cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
		return
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token payload"})
		return
	}
	ttl := int64(exp) - time.Now().Unix()
	if ttl > 0 {
		pc.RDB.Set(context.Background(), "blacklist:"+token, "1", time.Duration(ttl)*time.Second)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
