// Package api is the JSON presentation layer: the same session operations the
// HTML UI offers, surfaced as endpoints for programmatic callers.
package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabview/domain/core"
	"tabview/domain/table"
	apperrors "tabview/internal/errors"
	"tabview/ports"
)

// Server represents the JSON API server
type Server struct {
	router    *gin.Engine
	viewer    ports.ViewerPort
	maxUpload int64
}

// NewServer creates a new API server instance
func NewServer(viewer ports.ViewerPort, maxUpload int64) *Server {
	s := &Server{
		router:    gin.Default(),
		viewer:    viewer,
		maxUpload: maxUpload,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)

	s.router.POST("/api/sessions", s.handleCreateSession)
	s.router.GET("/api/sessions/:id", s.handleGetSession)
	s.router.DELETE("/api/sessions/:id", s.handleDropSession)

	s.router.GET("/api/sessions/:id/controls", s.handleControls)
	s.router.PUT("/api/sessions/:id/params", s.handleUpdateParams)
	s.router.GET("/api/sessions/:id/view", s.handleView)
	s.router.GET("/api/sessions/:id/summary", s.handleSummary)
	s.router.GET("/api/sessions/:id/distribution", s.handleDistribution)
	s.router.GET("/api/sessions/:id/export.csv", s.handleExportCSV)
	s.router.GET("/api/sessions/:id/export.xlsx", s.handleExportExcel)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	log.Printf("Starting tabview API server on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCreateSession accepts a multipart upload and infers its schema.
// A parse failure produces a 400 and no session.
func (s *Server) handleCreateSession(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file supplied"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	session, err := s.viewer.Load(file.Filename, raw)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       session.ID,
		"filename": session.Filename,
		"columns":  columnInfo(session.Table),
		"rows":     session.Table.NumRows(),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, err := s.viewer.Get(s.sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        session.ID,
		"filename":  session.Filename,
		"columns":   columnInfo(session.Table),
		"rows":      session.Table.NumRows(),
		"params":    session.Params,
		"loaded_at": session.LoadedAt,
	})
}

func (s *Server) handleDropSession(c *gin.Context) {
	s.viewer.Drop(s.sessionID(c))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleControls(c *gin.Context) {
	controls, err := s.viewer.Controls(s.sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"controls": controls})
}

func (s *Server) handleUpdateParams(c *gin.Context) {
	var params table.ViewParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed view parameters"})
		return
	}
	if err := s.viewer.UpdateParams(s.sessionID(c), params); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleView returns the computed view as header + row records
func (s *Server) handleView(c *gin.Context) {
	view, err := s.viewer.CurrentView(s.sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	records := view.Records()
	c.JSON(http.StatusOK, gin.H{
		"columns": records[0],
		"rows":    records[1:],
		"count":   view.NumRows(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	column := c.Query("column")
	if column == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column query parameter is required"})
		return
	}
	summary, err := s.viewer.Summary(s.sessionID(c), column)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleDistribution(c *gin.Context) {
	column := c.Query("column")
	if column == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column query parameter is required"})
		return
	}
	buckets, err := s.viewer.Distribution(s.sessionID(c), column)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column, "buckets": buckets})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	data, err := s.viewer.ExportCSV(s.sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="filtered_export.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) handleExportExcel(c *gin.Context) {
	data, err := s.viewer.ExportExcel(s.sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="filtered_export.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) sessionID(c *gin.Context) core.SessionID {
	return core.SessionID(c.Param("id"))
}

func (s *Server) renderError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

// columnInfo lists column names with their inferred kinds so callers can
// populate their own controls
func columnInfo(t *table.Table) []gin.H {
	info := make([]gin.H, len(t.Columns))
	for i, col := range t.Columns {
		info[i] = gin.H{"name": col.Name, "kind": col.Kind}
	}
	return info
}
