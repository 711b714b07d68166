package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/krisdikachi/Plancer/config"
	"github.com/krisdikachi/Plancer/database"
	"github.com/krisdikachi/Plancer/internal/aiassist"
	"github.com/krisdikachi/Plancer/internal/attendance"
	"github.com/krisdikachi/Plancer/internal/auth"
	"github.com/krisdikachi/Plancer/internal/event"
	"github.com/krisdikachi/Plancer/internal/notification"
	"github.com/krisdikachi/Plancer/internal/reports"
	"github.com/krisdikachi/Plancer/internal/waitlist"
	"github.com/krisdikachi/Plancer/middleware"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.ClientIPMiddleware())

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
		authGroup.POST("/switch-role", middleware.AuthMiddleware(cfg, authSvc), authHandler.SwitchRole)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, cfg)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	emailChannel := notification.NewEmailSender(cfg)
	pushChannel := notification.NewFCMChannel(cfg)
	notifSvc := notification.NewService(notifRepo, emailChannel, pushChannel)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Attendance ==========
	attRepo := attendance.NewRepository(database.DB)
	attSvc := attendance.NewService(attRepo, eventSvc)
	attSvc.NotifSvc = notifSvc
	attHandler := attendance.NewHandler(attSvc)

	// Confirmation emails drain from Kafka when brokers are configured
	notification.StartKafkaConsumer(notifSvc)

	// ========== Waitlist (public) ==========
	waitRepo := waitlist.NewRepository(database.DB)
	waitSvc := waitlist.NewService(waitRepo)
	waitHandler := waitlist.NewHandler(waitSvc)

	api.POST("/waitlist", waitHandler.Join)
	api.GET("/waitlist/count", waitHandler.Count)

	// Public invite-code surface: guests browse and RSVP without an account
	api.GET("/events/invite/:code", eventHandler.GetEventByInviteCode)
	api.POST("/events/invite/:code/rsvp", attHandler.RSVPByInviteCode)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Event Routes (planner only for writes) ==========
	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.CreateEvent)
		eventRoutes.GET("/", eventHandler.ListEvents)
		eventRoutes.GET("/stats", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.GetEventStats)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.UpdateEvent)
		eventRoutes.POST("/:id/publish", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.PublishEvent)
		eventRoutes.GET("/:id/share", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.ShareEvent)
		eventRoutes.POST("/:id/image", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.UploadImage)
		eventRoutes.DELETE("/:id", middleware.RBACMiddleware(auth.RolePlanner), eventHandler.DeleteEvent)

		// Attendance under the event resource
		eventRoutes.POST("/:id/rsvp", attHandler.RSVP)
		eventRoutes.GET("/:id/attendance/me", attHandler.GetMyAttendance)
		eventRoutes.GET("/:id/attendance/count", attHandler.CountAttendance)
		eventRoutes.GET("/:id/ticket", attHandler.TicketQR)
		eventRoutes.GET("/:id/attendees", middleware.RBACMiddleware(auth.RolePlanner), attHandler.ListAttendees)
		eventRoutes.POST("/:id/redeem", middleware.RBACMiddleware(auth.RolePlanner), attHandler.RedeemToken)

		eventRoutes.GET("/:id/notifications", middleware.RBACMiddleware(auth.RolePlanner), notifHandler.ListEventLogs)
	}

	// ========== Notification Routes ==========
	protected.POST("/send-email", middleware.RBACMiddleware(auth.RolePlanner), notifHandler.SendEmail)
	protected.POST("/send-push", middleware.RBACMiddleware(auth.RolePlanner), notifHandler.SendPush)
	protected.POST("/send-reminders", middleware.RBACMiddleware(auth.RolePlanner), notifHandler.SendReminders)

	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.POST("/device-token", notifHandler.RegisterDeviceToken)
		notifRoutes.DELETE("/device-token/:token", notifHandler.RemoveDeviceToken)
	}

	// ========== AI Assist (planner only) ==========
	geminiClient := aiassist.NewGeminiClient(cfg)
	stabilityClient := aiassist.NewStabilityClient(cfg)
	aiSvc := aiassist.NewService(geminiClient, stabilityClient, eventSvc)
	aiHandler := aiassist.NewHandler(aiSvc)

	aiRoutes := protected.Group("/ai")
	aiRoutes.Use(middleware.RBACMiddleware(auth.RolePlanner))
	{
		aiRoutes.POST("/generate", aiHandler.GenerateDraft)
		aiRoutes.POST("/generate-event", aiHandler.GenerateEvent)
		aiRoutes.POST("/generate-image", aiHandler.GenerateImage)
	}

	// ========== Reports (planner only) ==========
	exporter := reports.NewReportExporter()
	reportSvc := reports.NewService(exporter, eventSvc, attSvc)
	reportHandler := reports.NewHandler(reportSvc)

	protected.GET("/events/:id/attendees/export",
		middleware.RBACMiddleware(auth.RolePlanner), reportHandler.ExportAttendees)
}
