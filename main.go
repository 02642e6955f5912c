package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tabview/app"
	"tabview/internal/api"
	"tabview/internal/config"
	"tabview/ui"
)

// main runs the HTML UI and the JSON API together over one shared session
// registry. Use cmd/ui or cmd/api to run either server alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	viewer := app.NewViewerService()

	uiApp, err := ui.NewApp(viewer, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}
	apiServer := api.NewServer(viewer, cfg.Upload.MaxBytes)

	var group errgroup.Group
	group.Go(func() error {
		return uiApp.Start(":" + cfg.Server.UIPort)
	})
	group.Go(func() error {
		return apiServer.Run(":" + cfg.Server.APIPort)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
