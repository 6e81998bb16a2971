package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nishkarsh01/ParkEasy-Application/config"
	"github.com/Nishkarsh01/ParkEasy-Application/models"
	"github.com/Nishkarsh01/ParkEasy-Application/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo?alt=json"

type AuthController struct {
	Cfg    *config.Config
	RDB    *redis.Client
	Mailer utils.Mailer
	OAuth  *oauth2.Config

	// UserInfoURL is the profile endpoint queried after the code
	// exchange; tests point it at a local server.
	UserInfoURL string
}

func NewAuthController(cfg *config.Config, rdb *redis.Client, mailer utils.Mailer) *AuthController {
	if mailer == nil {
		mailer = &utils.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
		}
	}
	return &AuthController{
		Cfg:    cfg,
		RDB:    rdb,
		Mailer: mailer,
		OAuth: &oauth2.Config{
			RedirectURL:  cfg.GoogleRedirect,
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleSecret,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		UserInfoURL: googleUserInfoURL,
	}
}

type InitiateRegistrationRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// POST /api/initiate-registration
//
// Creates the placeholder unverified record and mails a signed one-hour
// verification link. Duplicate emails fail before any write.
func (ac *AuthController) InitiateRegistration(c *gin.Context) {
	var req InitiateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.FullName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name and email are required"})
		return
	}
	if !utils.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		return
	}

	db := utils.GetDB()
	var count int64
	db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is already in use"})
		return
	}

	redisKey := "verify:email:" + strings.ToLower(req.Email)
	if ok, msg := utils.CanSendVerification(ac.RDB, redisKey); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msg})
		return
	}

	token, err := utils.GenerateVerificationToken(req.Email, ac.Cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "InitiateRegistration: sign verification token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send verification email"})
		return
	}

	link := fmt.Sprintf("%s/api/verify-email?token=%s", ac.Cfg.VerifyBaseURL, token)
	body := fmt.Sprintf("Hello %s,\n\nPlease verify your email by clicking on the following link: %s", req.FullName, link)
	if err := ac.Mailer.Send(req.Email, "Verify Your Email - ParkEasy", body); err != nil {
		utils.LogError(err, "InitiateRegistration: send verification email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send verification email"})
		return
	}
	utils.MarkVerificationSent(ac.RDB, redisKey)

	user := models.User{FullName: req.FullName, Email: req.Email, Verified: false}
	if err := db.Create(&user).Error; err != nil {
		utils.LogError(err, "InitiateRegistration: create user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification email sent, please check your inbox"})
}

// GET /api/verify-email?token=
//
// Idempotent: verifying an already-verified record is a no-op redirect.
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	claims, err := utils.ParseJWT(tokenStr, ac.Cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		return
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no pending registration for this email"})
		return
	}
	if !user.Verified {
		user.Verified = true
		if err := db.Save(&user).Error; err != nil {
			utils.LogError(err, "VerifyEmail: save user")
			c.JSON(http.StatusBadRequest, gin.H{"error": "email verification failed"})
			return
		}
	}

	c.Redirect(http.StatusFound, ac.Cfg.FrontendSuccessURL)
}

type CompleteRegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/complete-registration
func (ac *AuthController) CompleteRegistration(c *gin.Context) {
	var req CompleteRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be driver or lister"})
		return
	}
	if !utils.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is too weak, it must be at least 8 characters long and include both letters and numbers"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("email = ? AND verified = ?", req.Email, true).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email not verified, please verify your email first"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "CompleteRegistration: hash password")
		c.JSON(http.StatusBadRequest, gin.H{"error": "error completing registration"})
		return
	}
	user.Password = &hash
	user.Role = req.Role
	if err := db.Save(&user).Error; err != nil {
		utils.LogError(err, "CompleteRegistration: save user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "error completing registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration complete, you can now log in"})
}

type RegisterRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	LicensePlate string `json:"license_plate"`
	VehicleType  string `json:"vehicle_type"`
}

// POST /api/register
//
// The single-step path: validate, hash and insert directly. The record is
// created already verified and credentialed.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !utils.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be driver or lister"})
		return
	}
	if !utils.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is too weak, it must be at least 8 characters long and include both letters and numbers"})
		return
	}

	db := utils.GetDB()
	var count int64
	db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is already in use"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "Register: hash password")
		c.JSON(http.StatusBadRequest, gin.H{"error": "error during registration"})
		return
	}
	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: &hash,
		Role:     req.Role,
		Verified: true,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.LicensePlate != "" {
		user.LicensePlate = &req.LicensePlate
	}
	if req.VehicleType != "" {
		user.VehicleType = &req.VehicleType
	}
	if err := db.Create(&user).Error; err != nil {
		utils.LogError(err, "Register: create user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "error during registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": UserPayload(&user)})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}
	// Google-only accounts have no hash to compare against.
	if user.GoogleID != nil && user.Password == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this account is registered with Google, please use Google to login"})
		return
	}
	if user.Password == nil || !utils.CheckPasswordHash(req.Password, *user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, ac.Cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "Login: sign token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "error during login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": UserPayload(&user)})
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GET /api/auth/google
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	ac.RDB.Set(context.Background(), "oauth:state:"+state, "1", 10*time.Minute)
	c.Redirect(http.StatusFound, ac.OAuth.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// GET /api/auth/google/callback
//
// Resolve-or-create by Google subject id, then issue the same session token
// as password login and hand it back to the frontend via redirect.
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	ctx := context.Background()

	state := c.Query("state")
	if state == "" {
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}
	if _, err := ac.RDB.Get(ctx, "oauth:state:"+state).Result(); err != nil {
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}
	ac.RDB.Del(ctx, "oauth:state:"+state)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}
	token, err := ac.OAuth.Exchange(ctx, code)
	if err != nil {
		utils.LogError(err, "GoogleCallback: code exchange")
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}

	client := ac.OAuth.Client(ctx, token)
	resp, err := client.Get(ac.UserInfoURL)
	if err != nil {
		utils.LogError(err, "GoogleCallback: fetch userinfo")
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.ID == "" || info.Email == "" {
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}

	user, err := resolveGoogleUser(&info)
	if err != nil {
		utils.LogError(err, "GoogleCallback: resolve user")
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}

	jwtToken, err := utils.GenerateJWT(user.ID, user.Email, ac.Cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "GoogleCallback: sign token")
		c.Redirect(http.StatusFound, ac.Cfg.FrontendFailureURL)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s", ac.Cfg.FrontendSuccessURL, jwtToken))
}

// resolveGoogleUser maps an identity-provider profile onto the users table:
// match by subject id first, then attach the subject id to an existing
// account with the same email, otherwise create a fresh verified record
// with no password.
func resolveGoogleUser(info *googleUserInfo) (*models.User, error) {
	db := utils.GetDB()

	var user models.User
	err := db.Where("google_id = ?", info.ID).First(&user).Error
	if err == nil {
		user.FullName = info.Name
		user.Email = info.Email
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	err = db.Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		googleID := info.ID
		user.GoogleID = &googleID
		user.Verified = true
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	googleID := info.ID
	user = models.User{
		FullName: info.Name,
		Email:    info.Email,
		GoogleID: &googleID,
		Role:     models.RoleDriver,
		Verified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
