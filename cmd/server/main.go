package main

import (
	"log"
	"time"

	"international-payments-backend/internal/config"
	"international-payments-backend/internal/events"
	"international-payments-backend/internal/logging"
	"international-payments-backend/internal/models"
	"international-payments-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()
	logger := logging.New(cfg)

	db := config.InitDB(cfg)

	db.AutoMigrate(
		&models.Payment{},
		&models.Employee{},
		&models.Customer{},
	)

	publisher := events.NewNoopPublisher()
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(cfg.KafkaBroker, logger)
	}

	// Unknown fields in payment payloads are rejected, not silently dropped.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Employee-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, publisher, logger)

	logger.Info("server starting", "addr", cfg.ServerAddr)
	r.Run(cfg.ServerAddr)
}
