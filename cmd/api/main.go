package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/swiftparcel/swiftparcel-backend/internal/config"
	"github.com/swiftparcel/swiftparcel-backend/internal/database"
	"github.com/swiftparcel/swiftparcel-backend/internal/handlers"
	"github.com/swiftparcel/swiftparcel-backend/internal/logger"
	"github.com/swiftparcel/swiftparcel-backend/internal/middleware"
	"github.com/swiftparcel/swiftparcel-backend/internal/payments"
	"github.com/swiftparcel/swiftparcel-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.MustLoad()
	appLog := logger.New(os.Stdout)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis backs the verified-claim cache; auth still works without it
	if err := services.InitRedis(cfg.RedisURL); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Firebase verifies externally-issued bearer tokens
	if err := services.InitFirebase(cfg.FirebaseServiceAccountPath); err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Storage for delivery photos (S3 or local fallback)
	if err := services.InitStorage(cfg); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	provider := payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeCurrency, cfg.SiteURL)
	verifier := services.FirebaseVerifier{}

	// Parcel status feed
	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	authRequired := middleware.AuthMiddleware(verifier)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Hello from server")
	})

	// Users
	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users", authRequired, handlers.GetUsers(db))
	r.PATCH("/users/:id", authRequired, handlers.UpdateUserRole(db))

	// Parcels
	r.GET("/parcels", handlers.GetParcels(db))
	r.GET("/parcels/:id", handlers.GetParcel(db))
	r.POST("/parcels", handlers.CreateParcel(db))
	r.DELETE("/parcels/:id", handlers.DeleteParcel(db))
	r.POST("/parcels/:id/photo", handlers.UploadParcelPhoto(db, hub))
	r.GET("/tracking/:trackingId", handlers.TrackParcel(db))

	// Payments
	r.POST("/create-checkout-session", handlers.CreateCheckoutSession(db, provider))
	r.PATCH("/payment-success", handlers.ConfirmPayment(db, provider, hub, appLog))
	r.GET("/payments", authRequired, handlers.GetPayments(db))

	// Riders
	r.POST("/riders", handlers.CreateRider(db))
	r.GET("/riders", handlers.GetRiders(db))
	r.PATCH("/riders/:id", authRequired, handlers.UpdateRiderStatus(db))

	// Parcel status feed
	r.GET("/ws", handlers.WebSocketHandler(hub))

	appLog.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
