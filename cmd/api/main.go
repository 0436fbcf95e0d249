package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/parkspot/parkspot-backend/internal/database"
	"github.com/parkspot/parkspot-backend/internal/handlers"
	"github.com/parkspot/parkspot-backend/internal/middleware"
	"github.com/parkspot/parkspot-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	sink := services.NewDatabaseNotificationSink(db, hub)
	bookingService := services.NewBookingService(db, sink)
	paymentService := services.NewPaymentService(db, sink)

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads; S3-backed images are served by S3
	if !services.IsUsingS3() {
		r.Static("/uploads", "/app/uploads")
	}

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		parking := api.Group("/parking")
		{
			parking.GET("/locations", handlers.GetAllLocations(db))
			parking.GET("/locations/:id", handlers.GetLocation(db))
			parking.GET("/locations/:id/slots", handlers.GetLocationSlots(db))
			parking.GET("/nearby", handlers.GetNearbyLocations(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", handlers.GetCurrentUser(db))

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(bookingService))
				bookings.GET("/active", handlers.GetActiveBooking(bookingService))
				bookings.GET("/history", handlers.GetBookingHistory(bookingService))
				bookings.GET("/:id", handlers.GetBooking(bookingService))
				bookings.PUT("/:id/status", handlers.UpdateBookingStatus(bookingService))
				bookings.GET("", middleware.AdminMiddleware(), handlers.GetAllBookings(bookingService))
			}

			payments := protected.Group("/payments")
			{
				payments.POST("", handlers.ProcessPayment(paymentService))
				payments.GET("/history", handlers.GetPaymentHistory(paymentService))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.GetNotifications(db))
				notifications.POST("/:id/read", handlers.MarkNotificationRead(db))
				notifications.POST("/read-all", handlers.MarkAllNotificationsRead(db))
			}

			// Admin parking management
			admin := protected.Group("/parking")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/locations", handlers.CreateLocation(db))
				admin.PUT("/locations/:id", handlers.UpdateLocation(db))
				admin.DELETE("/locations/:id", handlers.DeleteLocation(db))
				admin.POST("/locations/:id/image", handlers.UploadLocationImage(db))
				admin.POST("/locations/:id/slots", handlers.CreateSlot(db))
				admin.PUT("/slots/:id", handlers.UpdateSlot(db))
				admin.DELETE("/slots/:id", handlers.DeleteSlot(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
