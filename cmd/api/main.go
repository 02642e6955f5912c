package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tabview/app"
	"tabview/internal/api"
	"tabview/internal/config"
)

// main runs the JSON API server alone
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	server := api.NewServer(app.NewViewerService(), cfg.Upload.MaxBytes)
	if err := server.Run(":" + cfg.Server.APIPort); err != nil {
		log.Fatalf("API server exited: %v", err)
	}
}
