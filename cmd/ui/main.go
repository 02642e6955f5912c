package main

import (
	"log"

	"github.com/joho/godotenv"

	"tabview/app"
	"tabview/internal/config"
	"tabview/ui"
)

// main runs the HTML UI server alone
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	uiApp, err := ui.NewApp(app.NewViewerService(), cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}
	if err := uiApp.Start(":" + cfg.Server.UIPort); err != nil {
		log.Fatalf("UI server exited: %v", err)
	}
}
