package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"health_system/internal/api"         // Custom package for API handlers
	"health_system/internal/aqi"         // Outbound air-quality client
	"health_system/internal/config"      // Custom package for configuration
	"health_system/internal/eligibility" // Donation eligibility engine
	"health_system/internal/middleware"  // Custom package for middleware
	"health_system/internal/store"       // Repository layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Repository layer over the shared database handle
	members := store.NewMemberStore(db)
	records := store.NewRecordStore(db)
	stress := store.NewStressStore(db)

	// The eligibility engine composes the three stores and owns no I/O itself
	engine := eligibility.NewEngine(members, records, stress)

	// Outbound air-quality client
	aqiClient := aqi.NewClient(cfg.AQICNToken)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance
	r.Use(middleware.RequestIDMiddleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/register", api.RegisterHandler(db, members)) // Registration endpoint
	r.POST("/login", api.LoginHandler(db, members, cfg.JWTSecret))

	// Authenticated routes
	auth := r.Group("/api")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Family members
	auth.GET("/members", api.ListMembersHandler(members))
	auth.POST("/members", api.AddMemberHandler(members))
	auth.GET("/members/:id", api.GetMemberHandler(members, redisClient))
	auth.DELETE("/members/:id", api.DeleteMemberHandler(members, redisClient))
	auth.POST("/members/:id/vitals", api.UpdateMemberVitalsHandler(members, redisClient))
	auth.POST("/members/select", api.SetSelectedMemberHandler(db, members))
	auth.GET("/members/selected", api.GetSelectedMemberHandler(db))

	// Heart-rate records
	auth.POST("/heart-rate", api.SaveHeartRateHandler(members, records, redisClient))
	auth.GET("/heart-rate/last-7", api.LastSevenHandler(members, records, redisClient))
	auth.GET("/health-summary/latest", api.LatestSummaryHandler(members, records))

	// Stress assessment
	auth.POST("/stress", api.SaveStressHandler(members, stress))
	auth.GET("/stress/latest", api.LatestStressHandler(stress))

	// Wellness calculators and air quality
	auth.POST("/physical-health", api.PhysicalHealthHandler())
	auth.GET("/aqi", api.AQIHandler(aqiClient))
	auth.GET("/diet", api.DietHandler())

	// Blood donation eligibility
	auth.GET("/blood-donation/eligibility", api.EligibilityHandler(engine))
	auth.GET("/blood-donation/check-missing", api.CheckMissingHandler(engine))
	auth.POST("/blood-donation/save-missing", api.SaveMissingHandler(engine))

	// Telehealth (patient side)
	auth.GET("/coaches", api.ListCoachesHandler(db))
	auth.POST("/telehealth/request", api.SubmitConsultationHandler(db))
	auth.GET("/telehealth/timeline", api.NoteTimelineHandler(db))
	auth.POST("/telehealth/mark-seen", api.MarkNoteSeenHandler(db))
	auth.GET("/telehealth/data", api.TelehealthDataHandler(db, records))
	auth.POST("/feedback", api.SubmitFeedbackHandler(db))

	// Telehealth (coach side, approved coaches only)
	coach := r.Group("/coach")
	coach.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.CoachOnlyMiddleware(db))
	coach.GET("/requests", api.CoachRequestsHandler(db))
	coach.GET("/patient/:id/snapshot", api.PatientSnapshotHandler(db, records, stress))
	coach.POST("/notes", api.AddCoachNoteHandler(db))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/coaches", api.PendingCoachesHandler(db, redisClient))
	adminGroup.POST("/coaches/:id/approve", api.ApproveCoachHandler(db, redisClient))
	adminGroup.POST("/coaches/:id/reject", api.RejectCoachHandler(db, redisClient))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
