package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/krisdikachi/Plancer/config"
	"github.com/krisdikachi/Plancer/database"
	"github.com/krisdikachi/Plancer/internal/attendance"
	"github.com/krisdikachi/Plancer/internal/auth"
	"github.com/krisdikachi/Plancer/internal/event"
	"github.com/krisdikachi/Plancer/internal/notification"
	"github.com/krisdikachi/Plancer/internal/waitlist"
	"github.com/krisdikachi/Plancer/routes"
	"github.com/krisdikachi/Plancer/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (password reset tokens)
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional, RSVP confirmation dispatch)
	utils.InitializeKafka()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&attendance.Attendance{},
		&notification.NotificationLog{},
		&notification.PushDeviceToken{},
		&waitlist.WaitlistEntry{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Ensure uploads directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Printf("⚠️ Could not create uploads directory: %v", err)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	allowedOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve event images: /uploads/<eventID>/<filename>
	router.GET("/uploads/:eventID/:filename", func(c *gin.Context) {
		eventID := c.Param("eventID")
		filename := filepath.Base(c.Param("filename"))

		fullPath := filepath.Join(cfg.UploadDir, eventID, filename)
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		c.Header("Content-Type", utils.ImageContentType(filename))
		c.Header("Cache-Control", "public, max-age=86400")
		c.File(fullPath)
	})

	routes.Setup(router, cfg)

	log.Printf("🚀 Plancer API listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
