package main

import (
	"log"

	"github.com/kev405/toolflow/config"
	"github.com/kev405/toolflow/internal/api/routes"
	"github.com/kev405/toolflow/internal/auth"
	"github.com/kev405/toolflow/internal/database"
	"github.com/kev405/toolflow/internal/s3"
	"github.com/kev405/toolflow/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployment uses real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is not configured")
	}
	if err := auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration); err != nil {
		log.Fatalf("Invalid JWT configuration: %v", err)
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Could not seed administrator: %v", err)
	}

	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, photo uploads disabled")
	}

	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, db, uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
