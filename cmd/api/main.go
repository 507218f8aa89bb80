package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nass931808/EcoRide/internal/catalog"
	"github.com/nass931808/EcoRide/internal/config"
	"github.com/nass931808/EcoRide/internal/database"
	"github.com/nass931808/EcoRide/internal/handlers"
	"github.com/nass931808/EcoRide/internal/ledger"
	"github.com/nass931808/EcoRide/internal/logging"
	"github.com/nass931808/EcoRide/internal/middleware"
	"github.com/nass931808/EcoRide/internal/rating"
	"github.com/nass931808/EcoRide/internal/services"
	"github.com/nass931808/EcoRide/internal/trips"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.LogLevel))

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := services.InitRedis(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	seatLedger := ledger.New(db)
	aggregator := rating.New(db)
	rideCatalog := catalog.New(db)
	tripService := trips.New(db)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/inscription", handlers.Register(db, store, cfg.SessionTTL))
		api.POST("/connexion", handlers.Login(db, store, cfg.SessionTTL))
		api.GET("/covoiturage/liste", handlers.ListRides(rideCatalog))
		api.GET("/covoiturage/detail", handlers.RideDetail(rideCatalog))
		api.GET("/avis/utilisateur", handlers.ListUserReviews(aggregator))

		// Session-guarded routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(store))
		{
			protected.GET("/deconnexion", handlers.Logout(store))

			protected.GET("/utilisateur/profil", handlers.GetProfile(db))
			protected.GET("/utilisateur/vehicules", handlers.GetVehicles(db))
			protected.POST("/utilisateur/vehicules", handlers.CreateVehicle(db))
			protected.DELETE("/utilisateur/vehicules/:id", handlers.DeleteVehicle(db))

			protected.POST("/covoiturage/creer", handlers.CreateRide(tripService))

			protected.POST("/reservation/creer", handlers.CreateReservation(seatLedger))
			protected.POST("/reservation/confirmer", handlers.ConfirmReservation(seatLedger, store))
			protected.POST("/reservation/annuler", handlers.CancelReservation(seatLedger, store))

			protected.POST("/avis/creer", handlers.CreateReview(aggregator))

			protected.GET("/historique/utilisateur", handlers.History(tripService))
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
