package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/api"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer creates the server and wires the API handler.
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "salesboard.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	exportsDir := filepath.Join(dataDir, "exports")
	handler := api.NewHandler(cfg, sqliteStore, exportsDir)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes sets up CORS, the API group and the landing page.
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore returns the store (for tests).
func (s *Server) GetStore() *store.Store {
	return s.store
}

const landingPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Salesboard</title></head>
<body>
<h1>Salesboard</h1>
<p>Weekly sales summary service is running. API is mounted under <code>/api</code>.</p>
<ul>
<li><code>GET /api/status</code></li>
<li><code>POST /api/process</code> (multipart upload, SSE progress)</li>
<li><code>POST /api/preview</code></li>
<li><code>GET /api/runs</code></li>
</ul>
</body>
</html>
`
