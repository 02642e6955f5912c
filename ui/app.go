// Package ui is the HTML presentation layer: it owns the upload form, the
// view controls and the chart rendering, and delegates every table semantic
// to the viewer service behind the ports boundary.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tabview/ports"
)

//go:embed templates/* static/* docs/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	viewer    ports.ViewerPort
	templates *template.Template
	maxUpload int64
}

// Config holds UI application configuration
type Config struct {
	Addr      string
	MaxUpload int64
}

// NewApp creates a new UI application
func NewApp(viewer ports.ViewerPort, maxUpload int64) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		viewer:    viewer,
		templates: templates,
		maxUpload: maxUpload,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/help", a.handleHelp)

	a.router.Post("/upload", a.handleUpload)

	a.router.Get("/sessions/{id}", a.handleSession)
	a.router.Post("/sessions/{id}/params", a.handleUpdateParams)
	a.router.Post("/sessions/{id}/drop", a.handleDropSession)

	a.router.Get("/sessions/{id}/export.csv", a.handleExportCSV)
	a.router.Get("/sessions/{id}/export.xlsx", a.handleExportExcel)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	log.Printf("Starting tabview UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate writes an HTML response from a named template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
