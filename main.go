package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"local-services-server/config"
	"local-services-server/database"
	"local-services-server/jobs"
	"local-services-server/middleware"
	"local-services-server/routes"
	"local-services-server/services"
	ws "local-services-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if os.Getenv("SEED_DEMO") == "true" {
		seedDemoAccounts()
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Local Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Realtime hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	notificationService := services.NewNotificationService(database.DB)
	bookingService := services.NewBookingService(database.DB, notificationService, hub)
	paymentService := services.NewPaymentService(database.DB, notificationService, hub,
		time.Duration(config.AppConfig.Payment.ProcessingDelayMs)*time.Millisecond)
	messageService := services.NewMessageService(database.DB, notificationService, hub)
	reviewService := services.NewReviewService(database.DB)
	complaintService := services.NewComplaintService(database.DB)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// WebSocket attach (token may arrive as a query param)
		realtime := api.Group("")
		realtime.Use(middleware.WebSocketAuthMiddleware())
		routes.RegisterRealtimeRoutes(realtime, hub)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", routes.GetCurrentUser)

			routes.RegisterBookingRoutes(protected, bookingService)
			routes.RegisterMessageRoutes(protected, messageService)
			routes.RegisterPaymentRoutes(protected, paymentService)
			routes.RegisterNotificationRoutes(protected, notificationService)
			routes.RegisterWorkerMediaRoutes(protected)
			routes.RegisterComplaintRoutes(protected, complaintService)
		}

		// Review and worker discovery: public reads, protected writes
		routes.RegisterReviewRoutes(api, protected, reviewService)
		routes.RegisterWorkerRoutes(api, protected)

		// Admin routes (role-gated)
		adminGroup := api.Group("")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		routes.RegisterAdminRoutes(adminGroup, bookingService, complaintService)
	}

	// Background jobs
	reminderJob := jobs.NewReminderJob(notificationService,
		time.Duration(config.AppConfig.Jobs.PendingReminderHours)*time.Hour)
	reminderJob.Start()
	defer reminderJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
