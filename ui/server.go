package ui

import (
	"log"

	"github.com/gin-gonic/gin"

	"escopo/app"
	"escopo/internal/config"
	"escopo/ports"
)

// Server represents the web server for the scope-and-sequence API
type Server struct {
	router         *gin.Engine
	ingestService  *app.IngestService
	repo           ports.ScopeRepository
	maxUploadBytes int64
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, ingestService *app.IngestService, repo ports.ScopeRepository) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:         gin.Default(),
		ingestService:  ingestService,
		repo:           repo,
		maxUploadBytes: cfg.Ingest.MaxUploadBytes,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	// Ingestion and query API
	s.router.POST("/api/escopo/upload", s.handleUpload)
	s.router.GET("/api/escopo/:nivel", s.handleListItems)
	s.router.GET("/api/escopo/:nivel/resumo", s.handleLevelSummary)
	s.router.GET("/api/niveis", s.handleListLevels)
}

// Start begins serving HTTP requests
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting scope-sequence server on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
