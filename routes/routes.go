package routes

import (
	"github.com/Nishkarsh01/ParkEasy-Application/config"
	"github.com/Nishkarsh01/ParkEasy-Application/controllers"
	"github.com/Nishkarsh01/ParkEasy-Application/middleware"
	"github.com/Nishkarsh01/ParkEasy-Application/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupRouter builds the gin.Engine with all routes registered. mailer may
// be nil, in which case outbound mail goes over SMTP per the config.
func SetupRouter(cfg *config.Config, rdb *redis.Client, mailer utils.Mailer) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authController := controllers.NewAuthController(cfg, rdb, mailer)
	profileController := controllers.NewProfileController(cfg, rdb)

	api := r.Group("/api")
	{
		api.POST("/initiate-registration", authController.InitiateRegistration)
		api.GET("/verify-email", authController.VerifyEmail)
		api.POST("/complete-registration", authController.CompleteRegistration)
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)
		api.GET("/auth/google", authController.GoogleLogin)
		api.GET("/auth/google/callback", authController.GoogleCallback)
	}

	protected := api.Group("", middleware.JWTAuthMiddleware(cfg.JWTSecret, rdb))
	{
		protected.GET("/profile", profileController.GetProfile)
		protected.PUT("/profile", profileController.UpdateProfile)
		protected.DELETE("/profile", profileController.DeleteUser)
		protected.POST("/logout", profileController.Logout)
	}

	return r
}
