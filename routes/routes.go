// File: /routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"milestone-api/config"
	"milestone-api/controllers"
	"milestone-api/logger"
	"milestone-api/middleware"
	"milestone-api/services"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Config      *config.Config
	Location    *time.Location
	Log         *logger.Logger
	Tokens      *services.TokenManager
	Auth        *services.AuthService
	Records     *services.RecordService
	Aggregation *services.AggregationService
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// Controllers
	authController := controllers.NewAuthController(deps.Auth, deps.Log)
	recordController := controllers.NewRecordController(deps.Records, deps.Location, deps.Log)
	reportController := controllers.NewReportController(deps.Aggregation, deps.Log)
	calculatorController := controllers.NewCalculatorController(deps.Log)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.ValidateJSON())

	// Auth routes (public)
	api.POST("/signup", authController.Signup)
	api.POST("/signin", authController.Signin)
	api.POST("/logout", authController.Logout)

	// Calculator routes (public, rate limited)
	calculator := api.Group("/calculator")
	calculator.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	{
		calculator.POST("/mileage", calculatorController.CalculateMileage)
		calculator.POST("/fuel-cost", calculatorController.CalculateFuelCost)
		calculator.POST("/trip-charge", calculatorController.CalculateTripCharge)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		protected.GET("/profile", authController.GetProfile)

		protected.POST("/mileage", recordController.CreateMileage)
		protected.GET("/mileage", recordController.GetMileage)

		protected.POST("/trip", recordController.CreateTrip)
		protected.GET("/trip", recordController.GetTrips)

		protected.POST("/accountlog", recordController.CreateAccountLog)
		protected.GET("/accountlog", recordController.GetAccountLogs)
		protected.GET("/accountlog/summary", reportController.GetSummary)

		protected.GET("/history", reportController.GetHistory)
	}
}

// SetupCORS allows the browser client to call the API with a bearer token.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-RateLimit-Remaining, X-RateLimit-Reset")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
